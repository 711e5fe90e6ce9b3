package lookups

// Symbols of legal values
const (
	PTnote = iota
	PTdiscussion
	PTnode
)

// PostType returns a "generic" string for a given value
func PostType(value int) string {

	var str = ""

	switch {
	case value == PTnote:
		str = "note"
	case value == PTdiscussion:
		str = "discussion"
	case value == PTnode:
		str = "node"
	}

	return str
}
