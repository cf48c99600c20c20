package format

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN writes the subset of EDN the CLI payloads need: maps with keyword keys,
// vectors, strings, numbers, booleans and nil. Structs go through their json tags.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	x, err := viaJSON(v)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	e := ednWriter{buf: &buf, pretty: pretty}
	e.value(x, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

type ednWriter struct {
	buf    *bytes.Buffer
	pretty bool
}

func (e ednWriter) value(v any, level int) {
	switch t := v.(type) {
	case nil:
		e.buf.WriteString("nil")
	case bool:
		e.buf.WriteString(strconv.FormatBool(t))
	case string:
		e.buf.WriteString(strconv.Quote(t))
	case float64:
		// JSON numbers decode as float64; integral values print as ints.
		if t == float64(int64(t)) {
			e.buf.WriteString(strconv.FormatInt(int64(t), 10))
			return
		}
		e.buf.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		e.open('[')
		for i, it := range t {
			e.sep(i, level+1)
			e.value(it, level+1)
		}
		e.close(']', len(t), level)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		e.open('{')
		for i, k := range keys {
			e.sep(i, level+1)
			e.buf.WriteByte(':')
			e.buf.WriteString(keyword(k))
			e.buf.WriteByte(' ')
			e.value(t[k], level+1)
		}
		e.close('}', len(keys), level)
	default:
		e.buf.WriteString(strconv.Quote(fmt.Sprint(t)))
	}
}

func (e ednWriter) open(c byte) { e.buf.WriteByte(c) }

func (e ednWriter) sep(i, level int) {
	switch {
	case e.pretty:
		e.buf.WriteByte('\n')
		e.buf.WriteString(strings.Repeat("  ", level))
	case i > 0:
		e.buf.WriteByte(' ')
	}
}

func (e ednWriter) close(c byte, n, level int) {
	if e.pretty && n > 0 {
		e.buf.WriteByte('\n')
		e.buf.WriteString(strings.Repeat("  ", level))
	}
	e.buf.WriteByte(c)
}

// keyword maps a json key to a legal EDN keyword name: camelCase stays, anything
// outside letters, digits and -_.*+!?<>= becomes '-'.
func keyword(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("-_.*+!?<>=", r) {
			return r
		}
		return '-'
	}, s)
}
