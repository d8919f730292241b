package diag

// Shower is implemented by errors that can show themselves together with the
// part of the source they refer to.
type Shower interface {
	// Show returns a multi-line rendering, with each line prefixed by indent.
	Show(indent string) string
}
