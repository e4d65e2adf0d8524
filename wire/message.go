package wire

// Message is the contract between generated message types and the codec.
// Implementations own fixed-capacity storage allocated at construction;
// the codec never allocates on their behalf.
type Message interface {
	// Reset returns the message to its zero state. Presence flags clear,
	// repeated fields truncate to empty, oneof groups empty out. Backing
	// storage is kept so the message can be reused without allocating.
	Reset()

	// EncodeFields writes every populated field to e in declaration
	// order. Tags are written by the implementation; e frames nothing.
	EncodeFields(e *Encoder) error

	// DecodeField consumes the payload for fieldNumber if the message
	// declares that field, returning true. For unknown field numbers it
	// returns false without moving the cursor so the dispatch loop can
	// skip the payload.
	DecodeField(d *Decoder, fieldNumber FieldNumber, wireType WireType) (bool, error)
}

// Oneof is the contract for generated oneof groups. At most one variant is
// populated at a time; setting any variant clears the others.
type Oneof interface {
	// Which returns the field number of the populated variant, or 0 when
	// the group is empty.
	Which() FieldNumber

	// Clear empties the group.
	Clear()

	// EncodeOneof writes the populated variant to e, or nothing when the
	// group is empty.
	EncodeOneof(e *Encoder) error

	// DecodeVariant consumes the payload for fieldNumber if the group
	// declares that variant, returning true. Decoding a variant clears
	// whichever variant was populated before.
	DecodeVariant(d *Decoder, fieldNumber FieldNumber, wireType WireType) (bool, error)
}

// MessagePtr constrains a pointer type to one whose element implements
// Message. DecodeRepeatedEmbedded uses it to decode into vector slots in
// place instead of through an allocated interface value.
type MessagePtr[M any] interface {
	*M
	Message
}

// DecodeMessageFields drives m.DecodeField over every tag left in the
// current decode window. Payloads for field numbers the message does not
// declare are skipped by wire type. Errors are tagged with the field
// number they surfaced at; nested messages extend the path outward.
func DecodeMessageFields(d *Decoder, m Message) error {
	for !d.EOF() {
		fieldNumber, wireType, err := d.DecodeTag()
		if err != nil {
			return err
		}

		matched, err := m.DecodeField(d, fieldNumber, wireType)
		if err != nil {
			return wrapDecodingFieldError(err, fieldNumber)
		}
		if !matched {
			if err := d.Skip(wireType); err != nil {
				return wrapDecodingFieldError(err, fieldNumber)
			}
		}
	}

	return nil
}
