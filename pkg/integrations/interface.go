package integrations

// Processor turns a downloaded image into the bytes embedded in an export.
type Processor interface {
	Process(image []byte) ([]byte, error)
}
