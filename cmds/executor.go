package cmds

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strconv"

	"github.com/HishamYahya/gollm/vars"
)

type Executor struct {
	commands map[string]*Command
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
	}
	ret.Define("-h", Func(func() {
		ret.PrintUsage()
		os.Exit(0)
	}).Desc("print this usage"))
	return ret
}

func (p *Executor) Define(name string, command *Command) {
	if _, ok := p.commands[name]; ok {
		panic(fmt.Errorf("duplicated command %s", name))
	}
	p.commands[name] = command
}

// Execute consumes flag-style arguments and returns the rest unconsumed.
// Arguments stop being consumed at the first token that is not a defined
// command name.
func (p *Executor) Execute(args []string) ([]string, error) {
	for len(args) > 0 {
		command, ok := p.commands[args[0]]
		if !ok {
			return args, nil
		}
		args = args[1:]

		var callArgs []reflect.Value
		fnType := command.Func.Type()
		for i := range fnType.NumIn() {
			value, err := parseArg(fnType.In(i), args)
			if err != nil {
				return args, err
			}
			if len(args) > 0 {
				args = args[1:]
			}
			callArgs = append(callArgs, value)
		}

		rets := command.Func.Call(callArgs)
		if len(rets) == 1 {
			if err, ok := rets[0].Interface().(error); ok && err != nil {
				return args, err
			}
		}
	}
	return args, nil
}

func (p *Executor) MustExecute(args []string) []string {
	rest, err := p.Execute(args)
	if err != nil {
		panic(err)
	}
	return rest
}

func (p *Executor) PrintUsage() {
	names := make([]string, 0, len(p.commands))
	for name := range p.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if desc := p.commands[name].Description; desc != "" {
			fmt.Printf("%s\t%s\n", name, desc)
		} else {
			fmt.Printf("%s\n", name)
		}
	}
}

func parseArg(t reflect.Type, args []string) (ret reflect.Value, err error) {
	if len(args) == 0 {
		return ret, fmt.Errorf("expecting argument, got nothing")
	}
	str := args[0]

	ret = reflect.New(t).Elem()
	switch t.Kind() {

	case reflect.Bool:
		ret.SetBool(vars.StrToBool(str))
		return ret, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return ret, fmt.Errorf("convert %s to int: %w", str, err)
		}
		ret.SetInt(v)
		return ret, nil

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return ret, fmt.Errorf("convert %s to float: %w", str, err)
		}
		ret.SetFloat(v)
		return ret, nil

	case reflect.String:
		ret.SetString(str)
		return ret, nil

	}

	return ret, fmt.Errorf("unsupported type: %v", t)
}

var defaultExecutor = NewExecutor()

func Define(name string, command *Command) {
	defaultExecutor.Define(name, command)
}

func Execute(args []string) []string {
	return defaultExecutor.MustExecute(args)
}

func PrintUsage() {
	defaultExecutor.PrintUsage()
}
