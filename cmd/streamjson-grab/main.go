// Command streamjson-grab extracts a single value from a JSON document
// read on stdin by following a path expressed as command-line arguments
// (object keys and array indices), grounded on
// original_source/tests/jsongrab.cpp. It exists to exercise pull.Cursor
// as a thin client, not to hold parsing logic of its own.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/dbender/streamjson"
	"github.com/dbender/streamjson/ioreader"
	"github.com/dbender/streamjson/pull"
)

func main() {
	app := &cli.App{
		Name:      "streamjson-grab",
		Usage:     "extract a value from JSON on stdin by path",
		ArgsUsage: "PATH_SEGMENT...",
		Action:    run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	path := c.Args().Slice()

	stack := streamjson.NewParseStack(64)
	buf := make([]byte, 4096)
	cur := pull.NewCursor(buf, stack)
	cur.Begin(ioreader.NewFileReader(os.Stdin), nil)

	state, err := cur.Pull()
	if err != nil {
		return err
	}
	if state != pull.StateMap && state != pull.StateList {
		return fmt.Errorf("top-level document must be a map or array")
	}

	for i, seg := range path {
		last := i == len(path)-1

		if idx, perr := strconv.ParseUint(seg, 10, 32); perr == nil {
			if cur.State() != pull.StateList {
				return fmt.Errorf("expected a list for numeric segment %q", seg)
			}
			if err := seekIndex(cur, uint32(idx)); err != nil {
				return err
			}
		} else {
			if cur.State() != pull.StateMap {
				return fmt.Errorf("expected a map for key segment %q", seg)
			}
			if err := seekKey(cur, seg); err != nil {
				return err
			}
		}

		if last {
			break
		}

		v := cur.Value()
		if v.Kind != streamjson.KindObjectBegin && v.Kind != streamjson.KindArrayBegin {
			return fmt.Errorf("path segment %q does not reach a container", seg)
		}
		if _, err := cur.Pull(); err != nil {
			return err
		}
	}

	return printValue(cur)
}

// seekIndex walks forward idx siblings of the list the cursor is
// currently inside, skipping over nested containers via Up, then
// lands the cursor's current value on element idx.
func seekIndex(cur *pull.Cursor, idx uint32) error {
	var i uint32
	for {
		state, err := cur.Pull()
		if err != nil {
			return err
		}
		if state == pull.StateAscendList {
			return fmt.Errorf("index %d out of range", idx)
		}
		if i == idx {
			return nil
		}
		if state == pull.StateMap || state == pull.StateList {
			if _, err := cur.Up(); err != nil {
				return err
			}
		}
		i++
	}
}

// seekKey walks the map the cursor is currently inside until it lands on
// the value for key, using the cursor's eager key-set matching rather
// than comparing decoded key bytes on every value.
func seekKey(cur *pull.Cursor, key string) error {
	cur.SetKeySet([]string{key})
	for {
		state, err := cur.Pull()
		if err != nil {
			return err
		}
		if state == pull.StateAscendMap {
			return fmt.Errorf("key %q not found", key)
		}
		if cur.Value().KeyEnum == 0 {
			return nil
		}
		if state == pull.StateMap || state == pull.StateList {
			if _, err := cur.Up(); err != nil {
				return err
			}
		}
	}
}

func printValue(cur *pull.Cursor) error {
	v := cur.Value()
	switch v.Kind {
	case streamjson.KindObjectBegin:
		fmt.Print("[map]")
		return nil
	case streamjson.KindArrayBegin:
		fmt.Print("[array]")
		return nil

	case streamjson.KindNumeric:
		if v.ExpVal != 0 {
			f, err := cur.Float(pull.NoKeyEnum)
			if err != nil {
				return err
			}
			fmt.Printf("%g", f)
			return nil
		}
		if v.Flags&streamjson.FlagNegativeSignificand != 0 {
			n, err := cur.Int(pull.NoKeyEnum)
			if err != nil {
				return err
			}
			fmt.Printf("%d", n)
			return nil
		}
		n, err := cur.Uint(pull.NoKeyEnum)
		if err != nil {
			return err
		}
		fmt.Printf("%d", n)
		return nil

	case streamjson.KindString:
		buf := make([]byte, 4096)
		for {
			n, err := cur.ChunkRead(buf)
			if err != nil {
				return err
			}
			if n == 0 {
				break
			}
			os.Stdout.Write(buf[:n])
		}
		return nil

	case streamjson.KindSpecial:
		switch streamjson.Special(v.SignificandVal) {
		case streamjson.SpecialFalse:
			fmt.Print("false")
		case streamjson.SpecialTrue:
			fmt.Print("true")
		case streamjson.SpecialNull:
			fmt.Print("null")
		case streamjson.SpecialNaN:
			fmt.Print("NaN")
		case streamjson.SpecialInfinity:
			if v.Flags&streamjson.FlagNegativeSignificand != 0 {
				fmt.Print("-Infinity")
			} else {
				fmt.Print("Infinity")
			}
		}
		return nil

	default:
		return fmt.Errorf("unexpected value kind")
	}
}
