package objtypes

// Markdown is a result value holding markdown text. Printers render it instead of
// serializing it.
type Markdown string
