package funcspecs

// Example is one input/output pair the generated function must satisfy.
// Inputs are positional arguments.
type Example struct {
	Inputs []any `json:"inputs"`
	Output any   `json:"output"`
}

func Ex(output any, inputs ...any) Example {
	return Example{
		Inputs: inputs,
		Output: output,
	}
}

// Spec describes a function to synthesize. It is never mutated after
// construction: description, example order and template version all
// participate in the fingerprint.
type Spec struct {
	Description     string    `json:"description"`
	Examples        []Example `json:"examples,omitempty"`
	TemplateVersion string    `json:"template_version"`
}
