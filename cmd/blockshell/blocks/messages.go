package blocks

// Messages is the localization table consumed by block definitions.
// What a missing key yields is up to the implementation.
type Messages interface {
	Message(key string) string
}

// MessageMap is the simplest Messages: missing keys yield "".
type MessageMap map[string]string

func (m MessageMap) Message(key string) string { return m[key] }
