package program

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FormatText renders p as a human-readable listing, one instruction per
// line: "<addr> <MNEMONIC> <a> <b> <c>", trailing zero operands omitted.
func FormatText(w io.Writer, p *Program) error {
	bw := bufio.NewWriter(w)
	for addr, instr := range p.Instrs {
		if instr.Op == OpPush && PushKind(instr.B) == PushString {
			lit := ""
			if idx := instr.A; idx >= 0 && int(idx) < len(p.Strings) {
				lit = p.Strings[idx]
			}
			if _, err := fmt.Fprintf(bw, "%4d  %-16s %s\n", addr, "PUSH_STR", strconv.Quote(lit)); err != nil {
				return err
			}
			continue
		}
		fields := []string{fmt.Sprintf("%-16s", instr.Op.String())}
		switch {
		case instr.C != 0:
			fields = append(fields, strconv.FormatInt(instr.A, 10), strconv.FormatInt(instr.B, 10), strconv.FormatInt(instr.C, 10))
		case instr.B != 0:
			fields = append(fields, strconv.FormatInt(instr.A, 10), strconv.FormatInt(instr.B, 10))
		case instr.A != 0:
			fields = append(fields, strconv.FormatInt(instr.A, 10))
		}
		if _, err := fmt.Fprintf(bw, "%4d  %s\n", addr, strings.TrimRight(strings.Join(fields, " "), " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseText is FormatText's inverse for the CLI's `assemble` subcommand.
// Lines are "<MNEMONIC> <a> <b> <c>"; blank lines and lines starting with
// '#' are skipped. The leading address column FormatText prints is
// optional and ignored if present.
func ParseText(r io.Reader) (*Program, error) {
	scanner := bufio.NewScanner(r)
	var p Program
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		// Drop a leading numeric address column.
		if _, err := strconv.ParseInt(fields[0], 10, 64); err == nil && len(fields) > 1 {
			fields = fields[1:]
		}
		if fields[0] == "PUSH_STR" {
			rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
			if len(fields) > 1 {
				// Re-extract the quoted literal from the original line so
				// embedded spaces survive strings.Fields' splitting.
				if q := strings.Index(line, "\""); q >= 0 {
					rest = line[q:]
				}
			}
			lit, err := strconv.Unquote(strings.TrimSpace(rest))
			if err != nil {
				return nil, fmt.Errorf("bad PUSH_STR literal %q: %w", rest, err)
			}
			// Normalize to NFC so literals that differ only by combining-
			// mark ordering intern to the same constant-pool entry.
			p.Instrs = append(p.Instrs, PushStringInstr(p.Intern(norm.NFC.String(lit))))
			continue
		}
		op, ok := Lookup(fields[0])
		if !ok {
			return nil, fmt.Errorf("unknown opcode %q", fields[0])
		}
		instr := Instruction{Op: op}
		operands := [3]*int64{&instr.A, &instr.B, &instr.C}
		for i := 1; i < len(fields) && i-1 < 3; i++ {
			n, err := strconv.ParseInt(fields[i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bad operand %q for %s: %w", fields[i], op, err)
			}
			*operands[i-1] = n
		}
		p.Instrs = append(p.Instrs, instr)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}
