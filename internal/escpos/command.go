// Package escpos holds the ESC/POS command set used by thermal receipt
// printers and a small buffer for composing print jobs.
package escpos

import "fmt"

// Command is a printer control sequence.
type Command int

const (
	Init Command = iota
	BoldOn
	BoldOff
	DoubleHeight
	DoubleWidth
	DoubleSize
	NormalSize
	AlignLeft
	AlignCenter
	AlignRight
	Cut
	numCommands
)

// commandBytes is indexed by Command; every entry must be set.
var commandBytes = [numCommands][]byte{
	Init:         {0x1B, 0x40},
	BoldOn:       {0x1B, 0x45, 0x01},
	BoldOff:      {0x1B, 0x45, 0x00},
	DoubleHeight: {0x1B, 0x21, 0x10},
	DoubleWidth:  {0x1B, 0x21, 0x20},
	DoubleSize:   {0x1B, 0x21, 0x30},
	NormalSize:   {0x1B, 0x21, 0x00},
	AlignLeft:    {0x1B, 0x61, 0x00},
	AlignCenter:  {0x1B, 0x61, 0x01},
	AlignRight:   {0x1B, 0x61, 0x02},
	Cut:          {0x1D, 0x56, 0x41, 0x00},
}

var commandNames = [numCommands]string{
	Init:         "init",
	BoldOn:       "bold-on",
	BoldOff:      "bold-off",
	DoubleHeight: "double-height",
	DoubleWidth:  "double-width",
	DoubleSize:   "double-size",
	NormalSize:   "normal-size",
	AlignLeft:    "align-left",
	AlignCenter:  "align-center",
	AlignRight:   "align-right",
	Cut:          "cut",
}

// Bytes returns the wire encoding of c. The slice is shared; do not modify it.
func (c Command) Bytes() []byte {
	if c < 0 || c >= numCommands {
		return nil
	}
	return commandBytes[c]
}

func (c Command) String() string {
	if c < 0 || c >= numCommands {
		return fmt.Sprintf("command(%d)", int(c))
	}
	return commandNames[c]
}

// Commands lists every known command in declaration order.
func Commands() []Command {
	out := make([]Command, 0, numCommands)
	for c := Command(0); c < numCommands; c++ {
		out = append(out, c)
	}
	return out
}

// selectCodeTable is ESC t n.
func selectCodeTable(n byte) []byte { return []byte{0x1B, 0x74, n} }
