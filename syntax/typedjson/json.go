// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package typedjson allows encoding and decoding shell syntax trees as
// JSON. The decoding process needs to know what syntax node types to
// decode into, so the "typed JSON" requires "Type" keys in some syntax
// tree node objects:
//
//   - The root node
//   - Any node held by an interface field in the parent Go type
//
// The types of all other nodes can be inferred from context alone.
// Fields at their zero value are omitted when encoding; absent fields
// decode back to their zero value, so trees survive a round trip
// unchanged.
package typedjson

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/cmdsafe/sh/syntax"
)

// Encode is a shortcut for EncodeOptions.Encode, with the default
// options.
func Encode(w io.Writer, node syntax.Node) error {
	return EncodeOptions{}.Encode(w, node)
}

// EncodeOptions allows configuring how syntax nodes are encoded.
type EncodeOptions struct {
	Indent string // e.g. "\t"

	// Allows us to add options later.
}

// Encode writes node to w in its typed JSON form, as described in the
// package documentation.
func (opts EncodeOptions) Encode(w io.Writer, node syntax.Node) error {
	enc, err := encodeValue(reflect.ValueOf(node), true)
	if err != nil {
		return err
	}
	je := json.NewEncoder(w)
	if opts.Indent != "" {
		je.SetIndent("", opts.Indent)
	}
	return je.Encode(enc)
}

func encodeValue(val reflect.Value, withType bool) (interface{}, error) {
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return nil, nil
		}
		return encodeValue(val.Elem(), withType)
	case reflect.Struct:
		typ := val.Type()
		obj := make(map[string]interface{}, typ.NumField()+1)
		if withType {
			obj["Type"] = typ.Name()
		}
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			fv := val.Field(i)
			if fv.IsZero() {
				continue
			}
			ft := field.Type
			dynamic := ft.Kind() == reflect.Interface ||
				(ft.Kind() == reflect.Slice &&
					ft.Elem().Kind() == reflect.Interface)
			enc, err := encodeValue(fv, dynamic)
			if err != nil {
				return nil, err
			}
			obj[field.Name] = enc
		}
		return obj, nil
	case reflect.Slice:
		list := make([]interface{}, val.Len())
		for i := range list {
			enc, err := encodeValue(val.Index(i), withType)
			if err != nil {
				return nil, err
			}
			list[i] = enc
		}
		return list, nil
	case reflect.String:
		return val.String(), nil
	case reflect.Bool:
		return val.Bool(), nil
	case reflect.Int:
		return val.Int(), nil
	}
	return nil, fmt.Errorf("unsupported type: %s", val.Type())
}

// Decode is a shortcut for DecodeOptions.Decode, with the default
// options.
func Decode(r io.Reader) (syntax.Node, error) {
	return DecodeOptions{}.Decode(r)
}

// DecodeOptions allows configuring how syntax nodes are decoded.
type DecodeOptions struct {
	// Allows us to add options later.
}

// Decode reads a single typed JSON document from r and rebuilds the
// syntax tree it describes.
func (opts DecodeOptions) Decode(r io.Reader) (syntax.Node, error) {
	var data interface{}
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}
	val, err := decodeValue(data, nodeType)
	if err != nil {
		return nil, err
	}
	node, ok := val.Interface().(syntax.Node)
	if !ok {
		return nil, fmt.Errorf("decoded value is not a node: %s", val.Type())
	}
	return node, nil
}

var (
	nodeType  = reflect.TypeOf((*syntax.Node)(nil)).Elem()
	nodeTypes = map[string]reflect.Type{}
)

func init() {
	for _, node := range []syntax.Node{
		&syntax.File{},
		&syntax.Comment{},
		&syntax.Stmt{},
		&syntax.CallExpr{},
		&syntax.Subshell{},
		&syntax.Block{},
		&syntax.IfClause{},
		&syntax.WhileClause{},
		&syntax.ForClause{},
		&syntax.SelectClause{},
		&syntax.CStyleLoop{},
		&syntax.CaseClause{},
		&syntax.CaseItem{},
		&syntax.Pipeline{},
		&syntax.BinaryCmd{},
		&syntax.FuncDecl{},
		&syntax.TestClause{},
		&syntax.ArithmCmd{},
		&syntax.TimeClause{},
		&syntax.CoprocClause{},
		&syntax.DeclClause{},
		&syntax.LetClause{},
		&syntax.Word{},
		&syntax.Lit{},
		&syntax.SglQuoted{},
		&syntax.DblQuoted{},
		&syntax.ParamExp{},
		&syntax.Expansion{},
		&syntax.CmdSubst{},
		&syntax.ArithmExp{},
		&syntax.ProcSubst{},
		&syntax.Assign{},
		&syntax.ArrayExpr{},
		&syntax.ArrayElem{},
		&syntax.Redirect{},
	} {
		typ := reflect.TypeOf(node).Elem()
		nodeTypes[typ.Name()] = typ
	}
}

func decodeValue(data interface{}, typ reflect.Type) (reflect.Value, error) {
	if data == nil {
		return reflect.Zero(typ), nil
	}
	switch typ.Kind() {
	case reflect.Interface:
		obj, ok := data.(map[string]interface{})
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected an object, got %T", data)
		}
		name, _ := obj["Type"].(string)
		st, ok := nodeTypes[name]
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown node type: %q", name)
		}
		ptr := reflect.New(st)
		if err := decodeStruct(obj, ptr.Elem()); err != nil {
			return reflect.Value{}, err
		}
		return ptr, nil
	case reflect.Ptr:
		obj, ok := data.(map[string]interface{})
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected an object, got %T", data)
		}
		ptr := reflect.New(typ.Elem())
		if err := decodeStruct(obj, ptr.Elem()); err != nil {
			return reflect.Value{}, err
		}
		return ptr, nil
	case reflect.Slice:
		list, ok := data.([]interface{})
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected a list, got %T", data)
		}
		slice := reflect.MakeSlice(typ, len(list), len(list))
		for i, elem := range list {
			ev, err := decodeValue(elem, typ.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			slice.Index(i).Set(ev)
		}
		return slice, nil
	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected a string, got %T", data)
		}
		return reflect.ValueOf(s).Convert(typ), nil
	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected a bool, got %T", data)
		}
		return reflect.ValueOf(b).Convert(typ), nil
	case reflect.Int:
		f, ok := data.(float64)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected a number, got %T", data)
		}
		return reflect.ValueOf(int64(f)).Convert(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("unsupported type: %s", typ)
}

func decodeStruct(obj map[string]interface{}, val reflect.Value) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		data, ok := obj[field.Name]
		if !ok {
			continue
		}
		fv, err := decodeValue(data, field.Type)
		if err != nil {
			return err
		}
		val.Field(i).Set(fv)
	}
	return nil
}
