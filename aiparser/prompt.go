package aiparser

const systemPrompt = `You turn one recipe ingredient line into JSON.

Reply with a single JSON object and nothing else:
{
  "measurement": {
    "quantity": <quantity>,
    "unit": "<unit word exactly as written, omit when there is none>"
  },
  "name": "<ingredient name>",
  "comment": {"marker": "(" or ",", "text": "<comment text>", "closed": <true when the comment ends with ")">}
}

<quantity> is one of:
  {"kind": "decimal", "value": "2"}
  {"kind": "fraction", "whole": "1", "numerator": "1", "denominator": "2"}   (whole is optional)
  {"kind": "range", "low": <decimal or fraction>, "high": <decimal or fraction>}

Rules:
- Keep numbers as the literal text from the line, never convert them.
- Omit "measurement" when the line has no quantity.
- Omit "comment" when the line has no comment.
- "name" is required and never empty.`
