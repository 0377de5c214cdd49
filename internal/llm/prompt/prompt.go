// Package prompt holds the fixed instruction sent with every extraction
// request. The text is configuration, not user input: both engines embed
// it verbatim alongside the image payload.
package prompt

// Extraction asks the model for the structured content of one document
// image. Absent fields are omitted; the response carries no commentary.
const Extraction = `Analyze this bill/receipt/form carefully and extract all the data in a structured JSON format.
Include all relevant fields such as:
- Vendor/seller information (name, address, contact)
- Customer information (if available)
- Date of transaction
- Item list with descriptions, quantities, prices
- Subtotals, taxes, discounts
- Total amount
- Payment method
- Any other relevant information

If any field is not present, omit it from the JSON.
Return ONLY the JSON structure, no additional text or explanations.`
