// Package claimcheck defines an analyzer that reports a resource being
// claimed or borrowed again inside the body of its own claim.
//
// A nested claim of the same resource is a runtime defect: the kernel halts
// with ErrResourceBusy. Receivers are matched by expression, so
//
//	r.Claim(ctx, func(v *T) {
//		r.Claim(ctx, ...) // reported
//	})
//
// is reported while a claim through a different alias is not.
package claimcheck

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/ast/inspector"
)

const kernelPath = "omibyte.io/blinky/kernel"

var Analyzer = &analysis.Analyzer{
	Name:     "claimcheck",
	Doc:      "report resources claimed again inside their own claim",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	inspect.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		recv, method, ok := resourceCall(pass, call)
		if !ok || method != "Claim" || len(call.Args) != 2 {
			return
		}
		body, ok := astutil.Unparen(call.Args[1]).(*ast.FuncLit)
		if !ok {
			return
		}

		key := types.ExprString(recv)
		ast.Inspect(body.Body, func(n ast.Node) bool {
			inner, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			r, m, ok := resourceCall(pass, inner)
			if !ok || types.ExprString(r) != key {
				return true
			}
			pass.Reportf(inner.Pos(), "%s of %s inside its own claim", m, key)
			// Deeper nesting is reported from the inner claim
			return false
		})
	})
	return nil, nil
}

// resourceCall matches a Claim or Borrow call on a kernel resource and
// returns its receiver.
func resourceCall(pass *analysis.Pass, call *ast.CallExpr) (ast.Expr, string, bool) {
	sel, ok := astutil.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok {
		return nil, "", false
	}
	if sel.Sel.Name != "Claim" && sel.Sel.Name != "Borrow" {
		return nil, "", false
	}
	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	if !ok {
		return nil, "", false
	}
	recv := fn.Type().(*types.Signature).Recv()
	if recv == nil {
		return nil, "", false
	}
	t := recv.Type()
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return nil, "", false
	}
	obj := named.Obj()
	if obj.Name() != "Resource" || obj.Pkg() == nil || obj.Pkg().Path() != kernelPath {
		return nil, "", false
	}
	return astutil.Unparen(sel.X), sel.Sel.Name, true
}
