package alerts

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"gopkg.in/yaml.v3"
)

// RuleEnv is the expression environment one dashboard row is evaluated in.
type RuleEnv struct {
	VehicleNumber string  `expr:"VehicleNumber"`
	VehicleType   string  `expr:"VehicleType"`
	Status        string  `expr:"Status"`
	Place         string  `expr:"Place"`
	HaltingHours  float64 `expr:"HaltingHours"`
}

// Rule is one configurable alert condition over a dashboard row.
type Rule struct {
	Name       string `yaml:"name"`
	Expression string `yaml:"expression"`

	program *vm.Program
}

// DefaultRules matches the dashboard's red halt tier.
var DefaultRules = []Rule{
	{
		Name:       "halting-over-24h",
		Expression: "HaltingHours >= 24",
	},
}

// LoadRules reads and compiles a YAML rules file. An empty path compiles the
// default rule set.
func LoadRules(path string) ([]Rule, error) {
	rules := append([]Rule{}, DefaultRules...)

	if path != "" {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		rules = nil
		if err := yaml.Unmarshal(contents, &rules); err != nil {
			return nil, err
		}
	}

	for index := range rules {
		if err := rules[index].Compile(); err != nil {
			return nil, fmt.Errorf("rule %s: %w", rules[index].Name, err)
		}
	}

	return rules, nil
}

func (r *Rule) Compile() error {
	program, err := expr.Compile(r.Expression, expr.Env(RuleEnv{}), expr.AsBool())
	if err != nil {
		return err
	}

	r.program = program

	return nil
}

// Matches evaluates the compiled rule against one row environment.
func (r *Rule) Matches(env RuleEnv) (bool, error) {
	if r.program == nil {
		if err := r.Compile(); err != nil {
			return false, err
		}
	}

	output, err := expr.Run(r.program, env)
	if err != nil {
		return false, err
	}

	matched, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("rule %s did not evaluate to a boolean", r.Name)
	}

	return matched, nil
}
