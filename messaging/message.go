package messaging

// Priority is the urgency tier carried by a decoded message, ordered
// ROUTINE < PRIORITY < IMMEDIATE < FLASH.
type Priority string

const (
	PriorityRoutine   Priority = "ROUTINE"
	PriorityPriority  Priority = "PRIORITY"
	PriorityImmediate Priority = "IMMEDIATE"
	PriorityFlash     Priority = "FLASH"
)

// PriorityColors is a presentation-hint lookup table; the core never
// consumes it, but a UI collaborator may.
var PriorityColors = map[Priority]string{
	PriorityRoutine:   "#a0a0b8",
	PriorityPriority:  "#00d4ff",
	PriorityImmediate: "#ffb000",
	PriorityFlash:     "#ff3355",
}

// MessageType is the decoded packet's type byte.
type MessageType string

const (
	MessageTypeText     MessageType = "TEXT"
	MessageTypeLocation MessageType = "LOCATION"
	MessageTypeFile     MessageType = "FILE"
	MessageTypeImage    MessageType = "IMAGE"
	MessageTypeAck      MessageType = "ACK"
)

// messageTypeFromByte maps the packet's type byte; an unrecognized byte
// maps to TEXT.
func messageTypeFromByte(b byte) MessageType {
	switch b {
	case 0x02:
		return MessageTypeLocation
	case 0x03:
		return MessageTypeFile
	case 0x04:
		return MessageTypeImage
	case 0x05:
		return MessageTypeAck
	default:
		return MessageTypeText
	}
}

// Status is the outcome of one decode cycle.
type Status string

const (
	StatusOK    Status = "OK"
	StatusError Status = "ERROR"
)

// Record is the Message Record delivered to the consumer callback at most
// once per decode cycle.
type Record struct {
	Content  string
	Priority Priority
	Type     MessageType
	Filename string // empty unless Type is FILE or IMAGE
	Verified bool
	Status   Status
}

// errorRecord builds an ERROR-status record for one of the taxonomy's
// non-silent failures. It never carries decrypted bytes.
func errorRecord(content string) Record {
	return Record{Content: content, Priority: PriorityRoutine, Status: StatusError}
}

// NewCorruptDataRecord reports a sealed blob too short to hold a nonce and
// auth tag for any recognized cipher.
func NewCorruptDataRecord() Record { return errorRecord("Corrupt Data") }

// NewAuthFailureRecord reports an AEAD tag verification failure. No partial
// plaintext is ever exposed alongside it.
func NewAuthFailureRecord() Record { return errorRecord("Decryption failed") }

// NewUnsupportedCipherRecord reports that the runtime could not construct
// the fallback cipher at all.
func NewUnsupportedCipherRecord() Record { return errorRecord("ChaCha20 not supported") }
