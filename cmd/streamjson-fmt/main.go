// Command streamjson-fmt re-indents the JSON document read from stdin (or
// a file given as its sole argument), grounded on
// original_source/tests/jsontool.c. Only the first top-level document is
// printed; any input after it is not read.
// Like streamjson-grab it holds no parsing logic beyond driving
// pull.Cursor and printing what it returns.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dbender/streamjson"
	"github.com/dbender/streamjson/ioreader"
	"github.com/dbender/streamjson/pull"
)

func main() {
	app := &cli.App{
		Name:      "streamjson-fmt",
		Usage:     "pretty-print JSON documents",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "indent", Value: 2, Usage: "spaces per indent level"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	var reader pull.Reader
	if c.Args().Len() > 0 {
		f, err := os.Open(c.Args().First())
		if err != nil {
			return err
		}
		reader = ioreader.NewFileReader(f)
	} else {
		reader = ioreader.NewFileReader(os.Stdin)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	indent := c.Int("indent")
	stack := streamjson.NewParseStack(64)
	buf := make([]byte, 4096)
	cur := pull.NewCursor(buf, stack)
	cur.Begin(reader, nil)

	if err := printDoc(w, cur, indent); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func printDoc(w *bufio.Writer, cur *pull.Cursor, indent int) error {
	state, err := cur.Pull()
	if err != nil {
		return err
	}
	return printNode(w, cur, state, 0, indent)
}

func writeIndent(w *bufio.Writer, depth, indent int) {
	for i := 0; i < depth*indent; i++ {
		w.WriteByte(' ')
	}
}

// printNode prints the value the cursor is currently positioned on
// (state must be the result of the Pull that produced it) and, for
// containers, recurses until the matching ascend is consumed.
func printNode(w *bufio.Writer, cur *pull.Cursor, state pull.State, depth, indent int) error {
	switch state {
	case pull.StateMap:
		return printContainer(w, cur, depth, indent, '{', '}', pull.StateAscendMap, true)
	case pull.StateList:
		return printContainer(w, cur, depth, indent, '[', ']', pull.StateAscendList, false)
	case pull.StateDatum:
		// A keyed value whose own value is a container is reported as
		// a Datum carrying the key first (Cursor's depth lag, §4.4);
		// the actual Map/List descent follows on the next Pull.
		switch cur.Value().Kind {
		case streamjson.KindObjectBegin, streamjson.KindArrayBegin:
			next, err := cur.Pull()
			if err != nil {
				return err
			}
			return printNode(w, cur, next, depth, indent)
		default:
			return printScalar(w, cur)
		}
	default:
		return fmt.Errorf("unexpected state %s at top level", state)
	}
}

func printContainer(w *bufio.Writer, cur *pull.Cursor, depth, indent int, open, close byte, ascend pull.State, isMap bool) error {
	w.WriteByte(open)
	first := true
	for {
		state, err := cur.Pull()
		if err != nil {
			return err
		}
		if state == ascend {
			break
		}
		if !first {
			w.WriteByte(',')
		}
		first = false
		fmt.Fprintln(w)
		writeIndent(w, depth+1, indent)
		if isMap {
			keyBuf := make([]byte, 256)
			n, err := cur.GetKey(keyBuf)
			if err != nil {
				return err
			}
			w.WriteByte('"')
			w.Write(keyBuf[:n])
			w.WriteString("\": ")
		}
		if err := printNode(w, cur, state, depth+1, indent); err != nil {
			return err
		}
	}
	if !first {
		fmt.Fprintln(w)
		writeIndent(w, depth, indent)
	}
	w.WriteByte(close)
	return nil
}

func printScalar(w *bufio.Writer, cur *pull.Cursor) error {
	v := cur.Value()
	switch v.Kind {
	case streamjson.KindNumeric:
		if v.ExpVal != 0 {
			f, err := cur.Float(pull.NoKeyEnum)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%g", f)
			return nil
		}
		if v.Flags&streamjson.FlagNegativeSignificand != 0 {
			n, err := cur.Int(pull.NoKeyEnum)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%d", n)
			return nil
		}
		n, err := cur.Uint(pull.NoKeyEnum)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d", n)
		return nil

	case streamjson.KindString:
		w.WriteByte('"')
		buf := make([]byte, 512)
		for {
			n, err := cur.ChunkRead(buf)
			if err != nil {
				return err
			}
			if n == 0 {
				break
			}
			w.Write(buf[:n])
		}
		w.WriteByte('"')
		return nil

	case streamjson.KindSpecial:
		switch streamjson.Special(v.SignificandVal) {
		case streamjson.SpecialFalse:
			w.WriteString("false")
		case streamjson.SpecialTrue:
			w.WriteString("true")
		case streamjson.SpecialNull:
			w.WriteString("null")
		case streamjson.SpecialNaN:
			w.WriteString("NaN")
		case streamjson.SpecialInfinity:
			if v.Flags&streamjson.FlagNegativeSignificand != 0 {
				w.WriteString("-Infinity")
			} else {
				w.WriteString("Infinity")
			}
		}
		return nil

	default:
		return fmt.Errorf("unexpected scalar kind")
	}
}
