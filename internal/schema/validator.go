package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/aliasync/aliasync/internal/project"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

const (
	tsconfigSchema = "tsconfig.schema.json"
	configSchema   = "config.schema.json"
)

var printer = message.NewPrinter(language.English)

// Result contains the outcome of a schema validation.
type Result struct {
	Valid  bool    `json:"valid" yaml:"valid"`
	Issues []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Issue is a single leaf-level validation failure.
type Issue struct {
	Path    string `json:"path" yaml:"path"` // Instance location, e.g. "/compilerOptions/paths/@~1"
	Message string `json:"message" yaml:"message"`
	Keyword string `json:"keyword" yaml:"keyword"`
}

// String renders the issue as "path: message".
func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

type compiled struct {
	name   string
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

var (
	tsconfig = &compiled{name: tsconfigSchema}
	config   = &compiled{name: configSchema}
)

// get compiles the embedded schema once and returns it.
func (c *compiled) get() (*jsonschema.Schema, error) {
	c.once.Do(func() {
		raw, err := schemaFS.ReadFile("schema/" + c.name)
		if err != nil {
			c.err = fmt.Errorf("reading schema %s: %w", c.name, err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			c.err = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		comp := jsonschema.NewCompiler()
		if err := comp.AddResource(c.name, doc); err != nil {
			c.err = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		c.schema, c.err = comp.Compile(c.name)
		if c.err != nil {
			c.err = fmt.Errorf("compiling schema: %w", c.err)
		}
	})
	return c.schema, c.err
}

// ValidateTSConfig validates tsconfig.json content, comments and trailing
// commas allowed. The error return is for parse or compilation failures.
func ValidateTSConfig(data []byte) (*Result, error) {
	std, err := project.StandardizeJSONC(data)
	if err != nil {
		return nil, fmt.Errorf("parsing tsconfig JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(std))
	if err != nil {
		return nil, fmt.Errorf("parsing tsconfig JSON: %w", err)
	}
	return validate(tsconfig, inst)
}

// ValidateConfig validates the YAML project config file.
func ValidateConfig(data []byte) (*Result, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}
	return validate(config, inst)
}

func validate(c *compiled, inst any) (*Result, error) {
	sch, err := c.get()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	err = sch.Validate(inst)
	if err == nil {
		return &Result{Valid: true}, nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []Issue
	collect(ve, &issues)
	if len(issues) == 0 {
		issues = []Issue{{Message: ve.Error()}}
	}
	return &Result{Valid: false, Issues: dedupe(issues)}, nil
}

// collect walks the error tree and keeps leaf errors.
func collect(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collect(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		escaped := make([]string, len(ve.InstanceLocation))
		for i, seg := range ve.InstanceLocation {
			escaped[i] = strings.NewReplacer("~", "~0", "/", "~1").Replace(seg)
		}
		path = "/" + strings.Join(escaped, "/")
	}

	var keyword, msg string
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	if keyword == "" || keyword == "$ref" {
		return
	}

	*issues = append(*issues, Issue{Path: path, Message: msg, Keyword: keyword})
}

func dedupe(issues []Issue) []Issue {
	seen := make(map[string]bool, len(issues))
	var out []Issue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			out = append(out, issue)
		}
	}
	return out
}
