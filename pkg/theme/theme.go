// Package theme loads YAML theme files and compiles them into stylesheets.
// Themes are the config surface of the toolkit: named color variables plus a
// list of selector/property rules, validated before compilation.
package theme

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hawk90/revue/pkg/css"
	revueerrors "github.com/hawk90/revue/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Theme is the unmarshalled form of a theme file.
type Theme struct {
	Name      string            `yaml:"name" validate:"required"`
	Variables map[string]string `yaml:"variables" validate:"dive,keys,var_name,endkeys,required"`
	Rules     []Rule            `yaml:"rules" validate:"required,min=1,dive"`
}

// Rule is one selector with its property block. Properties listed under
// important compile with the !important flag.
type Rule struct {
	Selector   string            `yaml:"selector" validate:"required"`
	Properties map[string]string `yaml:"properties" validate:"required,min=1"`
	Important  []string          `yaml:"important"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	varNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("var_name", func(fl validator.FieldLevel) bool {
			return varNamePattern.MatchString(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// Load reads, parses and validates a theme file from disk.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, revueerrors.NewParseError(path, 0, err)
	}
	return Parse(data, path)
}

// Parse unmarshals and validates theme source. The path is used only for
// error messages.
func Parse(data []byte, path string) (*Theme, error) {
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, revueerrors.NewParseError(path, extractLine(err), err)
	}
	if err := validate(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func validate(t *Theme) error {
	if err := validatorInstance().Struct(t); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			first := invalid[0]
			return revueerrors.NewValidationError(first.Namespace(), fmt.Sprintf("failed %q validation", first.Tag()), err)
		}
		return revueerrors.NewValidationError("theme", err.Error(), err)
	}
	for i, rule := range t.Rules {
		for _, prop := range rule.Important {
			if _, ok := rule.Properties[prop]; !ok {
				field := fmt.Sprintf("rules[%d].important", i)
				return revueerrors.NewValidationError(field, fmt.Sprintf("marks unknown property %q", prop), nil)
			}
		}
	}
	return nil
}

// Compile resolves variables and produces a stylesheet. Unlike raw CSS
// parsing, compilation is strict: a selector that does not parse or a
// reference to an undefined variable fails the whole theme.
func (t *Theme) Compile() (*css.StyleSheet, error) {
	sheet := &css.StyleSheet{}
	for i, rule := range t.Rules {
		if _, err := css.ParseSelector(rule.Selector); err != nil {
			return nil, err
		}

		important := make(map[string]bool, len(rule.Important))
		for _, prop := range rule.Important {
			important[prop] = true
		}

		props := make([]string, 0, len(rule.Properties))
		for prop := range rule.Properties {
			props = append(props, prop)
		}
		sort.Strings(props)

		decls := make([]css.Declaration, 0, len(props))
		for _, prop := range props {
			value, err := t.substitute(rule.Properties[prop])
			if err != nil {
				field := fmt.Sprintf("rules[%d].properties.%s", i, prop)
				return nil, revueerrors.NewValidationError(field, err.Error(), err)
			}
			decls = append(decls, css.Declaration{
				Property:  prop,
				Value:     value,
				Important: important[prop],
			})
		}
		sheet.Rules = append(sheet.Rules, css.Rule{Selector: rule.Selector, Declarations: decls})
	}
	return sheet, nil
}

// substitute replaces $name references with the theme's variable values.
func (t *Theme) substitute(value string) (string, error) {
	if !strings.Contains(value, "$") {
		return value, nil
	}
	var out strings.Builder
	for len(value) > 0 {
		dollar := strings.IndexByte(value, '$')
		if dollar < 0 {
			out.WriteString(value)
			break
		}
		out.WriteString(value[:dollar])
		rest := value[dollar+1:]
		end := len(rest)
		for j := 0; j < len(rest); j++ {
			c := rest[j]
			if !(c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
				end = j
				break
			}
		}
		name := rest[:end]
		if name == "" {
			return "", fmt.Errorf("dangling $ in value %q", value)
		}
		resolved, ok := t.Variables[name]
		if !ok {
			return "", fmt.Errorf("undefined variable $%s", name)
		}
		out.WriteString(resolved)
		value = rest[end:]
	}
	return out.String(), nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
