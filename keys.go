package ccli

import "io"

// IntentKind enumerates the editing intents the keystroke decoder
// (component K) produces from raw bytes.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentPrintable
	IntentEnter
	IntentTab
	IntentBackspace
	IntentDelete
	IntentDeleteWord
	IntentDeleteToStart
	IntentHome
	IntentEnd
	IntentLeft
	IntentRight
	IntentLeftWord
	IntentRightWord
	IntentUp
	IntentDown
	IntentPageUp
	IntentPageDown
	IntentInterrupt
	IntentReverseSearch
	IntentInsert
	IntentContinuation
	IntentYank
	IntentEndOfInput
	IntentIgnored
)

// Intent is a single decoded editing intent. Byte carries the decoded
// byte value when Kind is IntentPrintable.
type Intent struct {
	Kind IntentKind
	Byte byte
}

// pushbackCap bounds the decoder's internal pushback ring, used so the
// pagination helper can peek a byte looking for Ctrl-C without losing
// an unrelated keystroke that happened to arrive at the same time.
const pushbackCap = 256

// Decoder reads bytes from an input endpoint one at a time and decodes
// ANSI CSI sequences and control characters into Intents (component K).
// Each byte is fetched with its own read, and Next reads no further
// than the end of the one key or escape sequence it decodes.
type Decoder struct {
	r        io.Reader
	pushback []byte
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Unread pushes a byte back so the next readByte returns it. Used to
// put back a byte consumed while probing for Ctrl-C during pagination.
func (d *Decoder) Unread(b byte) {
	d.pushback = append(d.pushback, 0)
	copy(d.pushback[1:], d.pushback)
	d.pushback[0] = b
	if len(d.pushback) > pushbackCap {
		d.pushback = d.pushback[:pushbackCap]
	}
}

func (d *Decoder) readByte() (byte, error) {
	if len(d.pushback) > 0 {
		b := d.pushback[0]
		d.pushback = d.pushback[1:]
		return b, nil
	}
	var buf [1]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadByte exposes a single raw byte read, used by the display surface
// for the paginator's "press any key" prompt.
func (d *Decoder) ReadByte() (byte, error) { return d.readByte() }

// Next decodes and returns the next Intent, reading as many bytes as
// needed to resolve (or fail to resolve) one escape sequence.
func (d *Decoder) Next() (Intent, error) {
	b, err := d.readByte()
	if err != nil {
		if err == io.EOF {
			return Intent{Kind: IntentEndOfInput}, nil
		}
		return Intent{}, newError(KindIO, err)
	}

	switch b {
	case 0x03:
		return Intent{Kind: IntentInterrupt}, nil
	case 0x12:
		return Intent{Kind: IntentReverseSearch}, nil
	case 0x15:
		return Intent{Kind: IntentDeleteToStart}, nil
	case 0x19:
		return Intent{Kind: IntentYank}, nil
	case 0x1B:
		return d.decodeEscape()
	case 0x7F:
		return Intent{Kind: IntentBackspace}, nil
	case '\r', '\n':
		return Intent{Kind: IntentEnter}, nil
	case '\t':
		return Intent{Kind: IntentTab}, nil
	default:
		return Intent{Kind: IntentPrintable, Byte: b}, nil
	}
}

func (d *Decoder) decodeEscape() (Intent, error) {
	b, err := d.readByte()
	if err != nil {
		if err == io.EOF {
			return Intent{Kind: IntentIgnored}, nil
		}
		return Intent{}, newError(KindIO, err)
	}
	switch b {
	case '[':
		return d.decodeCSI()
	case 0x7F:
		return Intent{Kind: IntentDeleteWord}, nil
	default:
		return Intent{Kind: IntentIgnored}, nil
	}
}

func (d *Decoder) decodeCSI() (Intent, error) {
	var param []byte
	for {
		b, err := d.readByte()
		if err != nil {
			if err == io.EOF {
				return Intent{Kind: IntentIgnored}, nil
			}
			return Intent{}, newError(KindIO, err)
		}
		switch {
		case b >= '0' && b <= '9':
			param = append(param, b)
		case b == 'A':
			return Intent{Kind: IntentUp}, nil
		case b == 'B':
			return Intent{Kind: IntentDown}, nil
		case b == 'C':
			return Intent{Kind: IntentRight}, nil
		case b == 'D':
			return Intent{Kind: IntentLeft}, nil
		case b == 'H':
			return Intent{Kind: IntentHome}, nil
		case b == 'F':
			return Intent{Kind: IntentEnd}, nil
		case b == '~':
			return csiTilde(string(param)), nil
		case b == ';':
			return d.decodeCSIModifier()
		default:
			return Intent{Kind: IntentIgnored}, nil
		}
	}
}

func csiTilde(param string) Intent {
	switch param {
	case "1":
		return Intent{Kind: IntentHome}
	case "2":
		return Intent{Kind: IntentInsert}
	case "3":
		return Intent{Kind: IntentDelete}
	case "4":
		return Intent{Kind: IntentEnd}
	case "5":
		return Intent{Kind: IntentPageUp}
	case "6":
		return Intent{Kind: IntentPageDown}
	default:
		return Intent{Kind: IntentIgnored}
	}
}

// decodeCSIModifier handles the "<param>;<modifier><letter>" shape,
// the only one this decoder supports being the Ctrl (5) modifier on
// Right/Left to produce word-wise movement.
func (d *Decoder) decodeCSIModifier() (Intent, error) {
	var mod []byte
	for {
		b, err := d.readByte()
		if err != nil {
			if err == io.EOF {
				return Intent{Kind: IntentIgnored}, nil
			}
			return Intent{}, newError(KindIO, err)
		}
		if b >= '0' && b <= '9' {
			mod = append(mod, b)
			continue
		}
		if string(mod) == "5" {
			switch b {
			case 'C':
				return Intent{Kind: IntentRightWord}, nil
			case 'D':
				return Intent{Kind: IntentLeftWord}, nil
			}
		}
		return Intent{Kind: IntentIgnored}, nil
	}
}
