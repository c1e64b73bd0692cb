package domain

// Code is a rendered scannable image together with the text it encodes.
type Code struct {
	Payload string
	PNG     []byte
}
