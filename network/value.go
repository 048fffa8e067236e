// Package network implements the node-network evaluator: a typed DAG
// of nodes with a process-wide node-type registry, memoizing
// depth-first evaluation, custom-node closures, and an expression node
// with dynamic pins (spec §4.C).
package network

import (
	"fmt"

	"github.com/latticecad/latticecad/atom"
	"github.com/latticecad/latticecad/sdf"
	v2 "github.com/latticecad/latticecad/vec/v2"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

// Kind names a NetworkResult's runtime type.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindVec2
	KindVec3
	KindIVec2
	KindIVec3
	KindBool
	KindString
	KindSDF2
	KindSDF3
	KindStructure
	KindFunction
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindIVec2:
		return "ivec2"
	case KindIVec3:
		return "ivec3"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindSDF2:
		return "sdf2"
	case KindSDF3:
		return "sdf3"
	case KindStructure:
		return "structure"
	case KindFunction:
		return "function"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// Value is a dynamically-typed wire value flowing between node pins.
// Exactly one of the typed fields is meaningful, selected by Kind;
// List and Elem describe a homogeneous list value.
type Value struct {
	Kind Kind

	Int       int
	Float     float64
	Vec2      v2.Vec
	Vec3      v3.Vec
	Bool      bool
	String    string
	SDF2      sdf.SDF2
	SDF3      sdf.SDF3
	Structure *atom.Structure
	Function  *Function

	List []Value
	Elem Kind
}

func IntValue(v int) Value          { return Value{Kind: KindInt, Int: v} }
func FloatValue(v float64) Value    { return Value{Kind: KindFloat, Float: v} }
func Vec2Value(v v2.Vec) Value      { return Value{Kind: KindVec2, Vec2: v} }
func Vec3Value(v v3.Vec) Value      { return Value{Kind: KindVec3, Vec3: v} }
func BoolValue(v bool) Value        { return Value{Kind: KindBool, Bool: v} }
func StringValue(v string) Value    { return Value{Kind: KindString, String: v} }
func SDF2Value(v sdf.SDF2) Value    { return Value{Kind: KindSDF2, SDF2: v} }
func SDF3Value(v sdf.SDF3) Value    { return Value{Kind: KindSDF3, SDF3: v} }
func StructureValue(v *atom.Structure) Value { return Value{Kind: KindStructure, Structure: v} }
func FunctionValue(v *Function) Value { return Value{Kind: KindFunction, Function: v} }
func ListValue(elem Kind, vs []Value) Value { return Value{Kind: KindList, Elem: elem, List: vs} }

// Coerce converts v to want, applying the implicit conversions
// described in spec §4.C ("Int -> Float, IVec -> Vec, T -> [T]"). It
// returns an error if no conversion exists.
func Coerce(v Value, want Kind) (Value, error) {
	if v.Kind == want {
		return v, nil
	}
	switch {
	case v.Kind == KindInt && want == KindFloat:
		return FloatValue(float64(v.Int)), nil
	case v.Kind == KindIVec2 && want == KindVec2:
		v.Kind = KindVec2 // ivec2 is carried as Vec2 with integral components in this implementation
		return v, nil
	case v.Kind == KindIVec3 && want == KindVec3:
		v.Kind = KindVec3
		return v, nil
	case want == KindList && v.Kind != KindList:
		return ListValue(v.Kind, []Value{v}), nil
	default:
		return Value{}, fmt.Errorf("network: cannot coerce %s to %s", v.Kind, want)
	}
}

// AsFloat returns v as a float64, coercing Int if needed.
func AsFloat(v Value) (float64, error) {
	switch v.Kind {
	case KindFloat:
		return v.Float, nil
	case KindInt:
		return float64(v.Int), nil
	default:
		return 0, fmt.Errorf("network: expected a number, got %s", v.Kind)
	}
}
