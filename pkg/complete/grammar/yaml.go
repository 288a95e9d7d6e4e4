package grammar

import "gopkg.in/yaml.v3"

// fileParser and fileAction mirror Parser/Action in a serializable shape.
// Completer callbacks cannot be serialized; attach them after decode with
// (*Parser).BindCompleter.
type fileParser struct {
	PrefixChars string                 `yaml:"prefix_chars" json:"prefix_chars"`
	AddHelp     *bool                  `yaml:"add_help" json:"add_help"`
	Actions     []fileAction           `yaml:"actions" json:"actions"`
	Subparsers  map[string]fileParser  `yaml:"subparsers" json:"subparsers"`
	Aliases     map[string]string      `yaml:"aliases" json:"aliases"` // alias name -> canonical subparser name
}

type fileAction struct {
	OptionStrings []string `yaml:"option_strings" json:"option_strings"`
	Dest          string   `yaml:"dest" json:"dest"`
	Nargs         string   `yaml:"nargs" json:"nargs"` // "", "?", "*", "+", "REMAINDER", or an integer literal
	Choices       []string `yaml:"choices" json:"choices"`
	Help          string   `yaml:"help" json:"help"`
	Required      bool     `yaml:"required" json:"required"`
	GroupID       string   `yaml:"group_id" json:"group_id"`
	Kind          string   `yaml:"kind" json:"kind"`
	SubparsersOf  string   `yaml:"subparsers_of" json:"subparsers_of"` // key into fileParser.Subparsers, when kind == "subparsers"
}

// FromYAML decodes a declarative grammar document into a Parser tree.
func FromYAML(data []byte) (*Parser, error) {
	var fp fileParser
	if err := yaml.Unmarshal(data, &fp); err != nil {
		return nil, err
	}
	return buildParser(fp)
}

func buildParser(fp fileParser) (*Parser, error) {
	p := &Parser{
		PrefixChars:  orDefault(fp.PrefixChars, "-"),
		mutexMembers: make(map[string][]*Action),
		optionIndex:  make(map[string]*Action),
	}
	if fp.AddHelp == nil || *fp.AddHelp {
		if err := p.AddOptional(&Action{OptionStrings: []string{"-h", "--help"}, Dest: "help", Kind: KindHelp, Help: "show this help message and exit"}); err != nil {
			return nil, err
		}
	}

	children := make(map[string]*Parser, len(fp.Subparsers))
	for name, childSpec := range fp.Subparsers {
		child, err := buildParser(childSpec)
		if err != nil {
			return nil, err
		}
		children[name] = child
	}

	for _, fa := range fp.Actions {
		a := &Action{
			OptionStrings: fa.OptionStrings,
			Dest:          fa.Dest,
			Nargs:         parseNargs(fa.Nargs),
			Choices:       fa.Choices,
			Help:          fa.Help,
			Required:      fa.Required,
			GroupID:       fa.GroupID,
			Kind:          parseKind(fa.Kind),
		}
		if a.Kind == KindSubparsers {
			sp := NewSubparsers()
			for alias, canonical := range fp.Aliases {
				if canonical == fa.SubparsersOf {
					sp.Add(canonical, children[canonical], alias)
				}
			}
			if _, already := sp.Lookup(fa.SubparsersOf); !already {
				sp.Add(fa.SubparsersOf, children[fa.SubparsersOf])
			}
			for name, child := range children {
				if _, ok := sp.Lookup(name); !ok {
					sp.Add(name, child)
				}
			}
			a.Subparsers = sp
		}
		var err error
		if a.IsOptional() {
			err = p.AddOptional(a)
		} else {
			err = p.AddPositional(a)
		}
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// BindCompleter attaches a Completer to the action with the given dest,
// post-decode (completer callbacks can't round-trip through YAML/JSON).
func (p *Parser) BindCompleter(dest string, c Completer) bool {
	for _, a := range p.Actions {
		if a.Dest == dest {
			a.Completer = c
			return true
		}
	}
	return false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func parseNargs(s string) NArgs {
	switch s {
	case "", "1":
		return NargsOne()
	case "?":
		return NargsOptional()
	case "*":
		return NargsZeroOrMore()
	case "+":
		return NargsOneOrMore()
	case "REMAINDER":
		return NargsRemainder()
	default:
		n := 0
		for _, c := range s {
			if c < '0' || c > '9' {
				return NargsOne()
			}
			n = n*10 + int(c-'0')
		}
		return Nargs(n)
	}
}

func parseKind(s string) ActionKind {
	switch s {
	case "store_const":
		return KindStoreConst
	case "store_true":
		return KindStoreTrue
	case "store_false":
		return KindStoreFalse
	case "append":
		return KindAppend
	case "append_const":
		return KindAppendConst
	case "count":
		return KindCount
	case "subparsers":
		return KindSubparsers
	case "help":
		return KindHelp
	case "version":
		return KindVersion
	case "custom":
		return KindCustom
	default:
		return KindStore
	}
}
