package domain

import (
	"fmt"

	m "github.com/cisolate/cisolate/internal/model"
)

// Accessor is one synthesized function that substitutes for direct
// visibility of a static variable outside its original file.
type Accessor struct {
	// Declaration is the prototype line emitted into the package header.
	Declaration string
	// Definition is the function body emitted into the implementation,
	// directly below the copied static declaration.
	Definition string
}

// AccessorPlan is the full accessor surface for one used static variable.
type AccessorPlan struct {
	Variable  m.VariableDependency
	Accessors []Accessor
	// NeedsStddef is set when any signature uses size_t.
	NeedsStddef bool
	// NeedsString is set when any definition uses memcpy.
	NeedsString bool
}

// SynthesizeAccessors decides which getters, size queries and setters must
// exist for a static variable so the isolated package can read and mutate
// that state:
//
//   - const arrays get a const pointer getter and a size query;
//   - mutable arrays with a known count additionally get a bounded setter;
//   - mutable arrays of unknown size get only the getter and a zero size;
//   - scalars get a value getter, plus a setter when mutable.
//
// Globals never pass through here; their definitions are copied verbatim
// instead.
func SynthesizeAccessors(v m.VariableDependency) AccessorPlan {
	if v.Type.Kind == m.KindArray {
		return synthesizeArrayAccessors(v)
	}

	return synthesizeScalarAccessors(v)
}

func synthesizeArrayAccessors(v m.VariableDependency) AccessorPlan {
	plan := AccessorPlan{Variable: v, NeedsStddef: true}

	constPrefix := ""
	if v.Type.Const {
		constPrefix = "const "
	}

	plan.Accessors = append(plan.Accessors, Accessor{
		Declaration: fmt.Sprintf("%s%s* get_%s_ptr(void);", constPrefix, v.Type.Elem, v.Name),
		Definition:  fmt.Sprintf("%s%s* get_%s_ptr(void) { return %s; }", constPrefix, v.Type.Elem, v.Name, v.Name),
	})

	sizeBody := "{ return 0; }"
	if v.Type.Count != m.CountUnknown {
		sizeBody = fmt.Sprintf("{ return (size_t)%d; }", v.Type.Count)
	}

	plan.Accessors = append(plan.Accessors, Accessor{
		Declaration: fmt.Sprintf("size_t get_%s_size(void);", v.Name),
		Definition:  fmt.Sprintf("size_t get_%s_size(void) %s", v.Name, sizeBody),
	})

	if !v.Type.Const && v.Type.Count != m.CountUnknown {
		plan.NeedsString = true
		plan.Accessors = append(plan.Accessors, Accessor{
			Declaration: fmt.Sprintf("void set_%s(const %s* src, size_t n);", v.Name, v.Type.Elem),
			Definition: fmt.Sprintf(
				"void set_%s(const %s* src, size_t n) {\n"+
					"    size_t m = (n < (size_t)%d) ? n : (size_t)%d;\n"+
					"    memcpy(%s, src, m * sizeof(%s));\n"+
					"}",
				v.Name, v.Type.Elem, v.Type.Count, v.Type.Count, v.Name, v.Type.Elem),
		})
	}

	return plan
}

func synthesizeScalarAccessors(v m.VariableDependency) AccessorPlan {
	plan := AccessorPlan{Variable: v}

	plan.Accessors = append(plan.Accessors, Accessor{
		Declaration: fmt.Sprintf("%s get_%s(void);", v.Type.Elem, v.Name),
		Definition:  fmt.Sprintf("%s get_%s(void) { return %s; }", v.Type.Elem, v.Name, v.Name),
	})

	if !v.Type.Const {
		plan.Accessors = append(plan.Accessors, Accessor{
			Declaration: fmt.Sprintf("void set_%s(%s val);", v.Name, v.Type.Elem),
			Definition:  fmt.Sprintf("void set_%s(%s val) { %s = val; }", v.Name, v.Type.Elem, v.Name),
		})
	}

	return plan
}
