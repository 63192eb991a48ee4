// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import "fmt"

// Visitor holds a Visit method which is invoked for each node
// encountered by Walk. If the result visitor w is not nil, Walk visits
// each of the children of node with the visitor w, followed by a call
// of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

func walkStmts(v Visitor, stmts []*Stmt) {
	for _, s := range stmts {
		Walk(v, s)
	}
}

func walkWords(v Visitor, words []*Word) {
	for _, w := range words {
		Walk(v, w)
	}
}

// Walk traverses a syntax tree in depth-first order: It starts by
// calling v.Visit(node); node must not be nil. If the visitor w
// returned by v.Visit(node) is not nil, Walk is invoked recursively
// with visitor w for each of the non-nil children of node, followed by
// a call of w.Visit(nil).
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch x := node.(type) {
	case *File:
		walkStmts(v, x.Stmts)
		for _, c := range x.Comments {
			Walk(v, c)
		}
	case *Comment:
	case *Stmt:
		if x.Cmd != nil {
			Walk(v, x.Cmd)
		}
	case *CallExpr:
		for _, a := range x.Assigns {
			Walk(v, a)
		}
		walkWords(v, x.Args)
		for _, r := range x.Redirs {
			Walk(v, r)
		}
	case *Subshell:
		walkStmts(v, x.Stmts)
	case *Block:
		walkStmts(v, x.Stmts)
	case *IfClause:
		walkStmts(v, x.Cond)
		walkStmts(v, x.Then)
		walkStmts(v, x.Else)
	case *WhileClause:
		walkStmts(v, x.Cond)
		walkStmts(v, x.Do)
	case *ForClause:
		Walk(v, x.Name)
		walkWords(v, x.Items)
		walkStmts(v, x.Do)
	case *SelectClause:
		Walk(v, x.Name)
		walkWords(v, x.Items)
		walkStmts(v, x.Do)
	case *CStyleLoop:
		walkStmts(v, x.Do)
	case *CaseClause:
		Walk(v, x.Word)
		for _, ci := range x.Items {
			Walk(v, ci)
		}
	case *CaseItem:
		walkWords(v, x.Patterns)
		walkStmts(v, x.Stmts)
	case *Pipeline:
		walkStmts(v, x.Stmts)
	case *BinaryCmd:
		Walk(v, x.X)
		Walk(v, x.Y)
	case *FuncDecl:
		Walk(v, x.Name)
		walkStmts(v, x.Body)
	case *TestClause:
		walkWords(v, x.Words)
	case *ArithmCmd:
	case *TimeClause:
		if x.Stmt != nil {
			Walk(v, x.Stmt)
		}
	case *CoprocClause:
		if x.Name != nil {
			Walk(v, x.Name)
		}
		if x.Stmt != nil {
			Walk(v, x.Stmt)
		}
	case *DeclClause:
		Walk(v, x.Variant)
		walkWords(v, x.Args)
		for _, a := range x.Assigns {
			Walk(v, a)
		}
		for _, r := range x.Redirs {
			Walk(v, r)
		}
	case *LetClause:
		walkWords(v, x.Exprs)
		for _, r := range x.Redirs {
			Walk(v, r)
		}
	case *Word:
		for _, wp := range x.Parts {
			Walk(v, wp)
		}
	case *Lit:
	case *SglQuoted:
	case *DblQuoted:
		for _, wp := range x.Parts {
			Walk(v, wp)
		}
	case *ParamExp:
		if x.Param != nil {
			Walk(v, x.Param)
		}
		if x.Exp != nil {
			Walk(v, x.Exp)
		}
	case *Expansion:
		if x.Word != nil {
			Walk(v, x.Word)
		}
	case *CmdSubst:
		walkStmts(v, x.Stmts)
	case *ArithmExp:
	case *ProcSubst:
		walkStmts(v, x.Stmts)
	case *Assign:
		if x.Name != nil {
			Walk(v, x.Name)
		}
		if x.Value != nil {
			Walk(v, x.Value)
		}
		if x.Array != nil {
			Walk(v, x.Array)
		}
	case *ArrayExpr:
		for _, el := range x.Elems {
			Walk(v, el)
		}
	case *ArrayElem:
		if x.Index != nil {
			Walk(v, x.Index)
		}
		if x.Value != nil {
			Walk(v, x.Value)
		}
	case *Redirect:
		if x.N != nil {
			Walk(v, x.N)
		}
		if x.Word != nil {
			Walk(v, x.Word)
		}
		if x.Hdoc != nil {
			Walk(v, x.Hdoc)
		}
	default:
		panic(fmt.Sprintf("syntax.Walk: unexpected node type %T", x))
	}

	v.Visit(nil)
}
