// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package yang

// This file turns the token stream produced by lex.go into a tree of
// generic Statements. See build.go for how Statements are in turn converted
// into the typed AST nodes (defined in ast.go) the rest of the package
// works with.

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// A stmtParser parses the contents of a single .yang file into Statements.
type stmtParser struct {
	lex        *tokenizer
	errout     *bytes.Buffer
	tokens     []*lexToken  // stack of pushed-back tokens (for backing up)
	statements []*Statement // list of root statements

	// hitBrace is returned when a '}' is encountered. The returned
	// statement's location is updated to the brace's own location; whether
	// the brace is legitimate (closing a parent) or an error (unexpected)
	// is for the caller to decide.
	hitBrace *Statement
}

// A Statement is a generic YANG statement. A Statement may have optional
// sub-statements (i.e., a Statement is a tree).
type Statement struct {
	Keyword     string
	HasArgument bool
	Argument    string
	statements  []*Statement

	file string
	line int // 1's based line number
	col  int // 1's based column number
}

// FakeStatement returns a statement filled in with keyword, file, line and col.
func FakeStatement(keyword, file string, line, col int) *Statement {
	return &Statement{
		Keyword: keyword,
		file:    file,
		line:    line,
		col:     col,
	}
}

// Statement satisfies Node.

func (s *Statement) NName() string         { return s.Argument }
func (s *Statement) Kind() string          { return s.Keyword }
func (s *Statement) Statement() *Statement { return s }
func (s *Statement) ParentNode() Node      { return nil }

// Arg returns the optional argument to s. It returns false if s has no
// argument.
func (s *Statement) Arg() (string, bool) { return s.Argument, s.HasArgument }

// SubStatements returns a slice of Statements found in s.
func (s *Statement) SubStatements() []*Statement { return s.statements }

// String returns s's tree as a string.
func (s *Statement) String() string {
	var b bytes.Buffer
	s.Write(&b, "")
	return b.String()
}

// Location returns where in the source s was defined.
func (s *Statement) Location() string {
	switch {
	case s.file == "" && s.line == 0:
		return "unknown"
	case s.file == "":
		return fmt.Sprintf("line %d:%d", s.line, s.col)
	case s.line == 0:
		return fmt.Sprintf("%s", s.file)
	default:
		return fmt.Sprintf("%s:%d:%d", s.file, s.line, s.col)
	}
}

// Write writes the tree in s to w, each line indented by indent. Child
// nodes are indented one tab further. indent is typically "" at the top
// level. Write is intended to display the contents of a Statement, not
// necessarily to reproduce its original source text.
func (s *Statement) Write(w io.Writer, indent string) error {
	if s.Keyword == "" {
		// Just a collection of statements at the top level.
		for _, s := range s.statements {
			if err := s.Write(w, indent); err != nil {
				return err
			}
		}
		return nil
	}

	parts := []string{fmt.Sprintf("%s%s", indent, s.Keyword)}
	if s.HasArgument {
		args := strings.Split(s.Argument, "\n")
		if len(args) == 1 {
			parts = append(parts, fmt.Sprintf(" %q", s.Argument))
		} else {
			parts = append(parts, ` "`, args[0], "\n")
			i := fmt.Sprintf("%*s", len(s.Keyword)+1, "")
			for x, p := range args[1:] {
				s := fmt.Sprintf("%q", p)
				s = s[1 : len(s)-1]
				parts = append(parts, indent, " ", i, s)
				if x == len(args[1:])-1 {
					// last part just needs the closing "
					parts = append(parts, `"`)
				} else {
					parts = append(parts, "\n")
				}
			}
		}
	}

	if len(s.statements) == 0 {
		_, err := fmt.Fprintf(w, "%s;\n", strings.Join(parts, ""))
		return err
	}
	if _, err := fmt.Fprintf(w, "%s {\n", strings.Join(parts, "")); err != nil {
		return err
	}
	for _, s := range s.statements {
		if err := s.Write(w, indent+"\t"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s}\n", indent); err != nil {
		return err
	}
	return nil
}

// ignoreMe is returned to continue processing after an error (the parse
// will fail overall, but scanning continues to surface further errors).
var ignoreMe = &Statement{}

// Parse parses input as generic YANG and returns the statements found.
// path should name the source input was read from (e.g. a file name); it
// is used only to annotate error messages and statement locations. If one
// or more errors are encountered, nil and an error are returned, with the
// error's text including all of them.
func Parse(input, path string) ([]*Statement, error) {
	var statements []*Statement
	p := &stmtParser{
		lex:      newTokenizer(input, path),
		errout:   &bytes.Buffer{},
		hitBrace: &Statement{},
	}
	p.lex.errout = p.errout
Loop:
	for {
		switch ns := p.nextStatement(); ns {
		case nil:
			break Loop
		case p.hitBrace:
			fmt.Fprintf(p.errout, "%s:%d:%d: unexpected %c\n", ns.file, ns.line, ns.col, closeBrace)
		default:
			statements = append(statements, ns)
		}
	}

	if p.errout.Len() == 0 {
		return statements, nil
	}
	return nil, errors.New(strings.TrimSpace(p.errout.String()))
}

// push pushes tokens back onto the input so they will be the next ones
// returned by next. The stack is LIFO: the last token pushed is the next
// one returned.
func (p *stmtParser) push(t ...*lexToken) {
	p.tokens = append(p.tokens, t...)
}

// pop returns the last token pushed, or nil if the stack is empty.
func (p *stmtParser) pop() *lexToken {
	if n := len(p.tokens); n > 0 {
		n--
		defer func() { p.tokens = p.tokens[:n] }()
		return p.tokens[n]
	}
	return nil
}

// next returns the next token from the tokenizer, also handling the
// `"string" + "string"` concatenation form.
func (p *stmtParser) next() *lexToken {
	if t := p.pop(); t != nil {
		return t
	}
	next := func() *lexToken {
		for {
			if t := p.lex.NextToken(); t.Code() != tokErr {
				return t
			}
		}
	}
	t := next()
	if t.Code() != tokString {
		return t
	}
	for {
		nt := next()
		switch nt.Code() {
		case tokEOF:
			return t
		case tokIdent:
			if nt.Text != "+" {
				p.push(nt)
				return t
			}
		default:
			p.push(nt)
			return t
		}
		// Found a +; look for a following string to concatenate.
		st := next()
		switch st.Code() {
		case tokEOF:
			p.push(nt)
			return t
		case tokString:
			t.Text += st.Text
		default:
			p.push(st, nt)
			return t
		}
	}
}

// nextStatement returns the next statement in the input, recursing to
// read sub-statements as needed.
func (p *stmtParser) nextStatement() *Statement {
	t := p.next()
	switch t.Code() {
	case tokEOF:
		return nil
	case closeBrace:
		p.hitBrace.file = t.File
		p.hitBrace.line = t.Line
		p.hitBrace.col = t.Col
		return p.hitBrace
	case tokIdent:
	default:
		fmt.Fprintf(p.errout, "%v: not an identifier\n", t)
		return ignoreMe
	}

	s := &Statement{
		Keyword: t.Text,
		file:    t.File,
		line:    t.Line,
		col:     t.Col,
	}

	// The "pattern" keyword needs special handling: its argument's escape
	// sequences expand differently than elsewhere.
	p.lex.inPattern = t.Text == "pattern"
	t = p.next()
	p.lex.inPattern = false
	switch t.Code() {
	case tokString, tokIdent:
		s.HasArgument = true
		s.Argument = t.Text
		t = p.next()
	}
	switch t.Code() {
	case tokEOF:
		fmt.Fprintf(p.errout, "%s: unexpected EOF\n", s.file)
		return nil
	case ';':
		return s
	case openBrace:
		for {
			switch ns := p.nextStatement(); ns {
			case nil:
				return nil
			case p.hitBrace:
				return s
			default:
				s.statements = append(s.statements, ns)
			}
		}
	default:
		fmt.Fprintf(p.errout, "%v: syntax error\n", t)
		return ignoreMe
	}
}
