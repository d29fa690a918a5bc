package monty_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/montyvm/monty"
)

// constExpr builds a constant-expression literal, the shape the
// distillation step (outside this package) would already have reduced a
// parsed literal to.
func constExpr(v monty.Value) *monty.Expr {
	return &monty.Expr{Kind: monty.ExprConstant, Constant: v}
}

func nameExpr(idx int) *monty.Expr {
	return &monty.Expr{Kind: monty.ExprName, Name: idx}
}

func printCall(arg *monty.Expr) *monty.Expr {
	return &monty.Expr{Kind: monty.ExprCall, Builtin: monty.BuiltinPrint, Args: []monty.Expr{*arg}}
}

// TestRunAssignOpAssignAndPrint covers scenario 1: `x = 1; x += 2; print(x)`.
func TestRunAssignOpAssignAndPrint(t *testing.T) {
	// names: [x]
	body := []monty.Stmt{
		{Kind: monty.StmtAssign, Target: 0, Object: constExpr(monty.Int(1))},
		{Kind: monty.StmtOpAssign, Target: 0, Op: monty.OpAdd, Object: constExpr(monty.Int(2))},
		{Kind: monty.StmtExpr, Expr: printCall(nameExpr(0))},
	}
	prog := monty.NewProgram(body, []string{"x"})

	w := monty.NewCollectPrintWriter()
	result, err := monty.Run(prog, monty.RunOptions{Writer: w})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"3\n"}, result.Output); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

// TestRunForLoopSum covers scenario 2: summing a list literal in a for loop.
func TestRunForLoopSum(t *testing.T) {
	// names: [total, item]
	listExpr := &monty.Expr{Kind: monty.ExprList, Elements: []monty.Expr{
		*constExpr(monty.Int(1)), *constExpr(monty.Int(2)), *constExpr(monty.Int(3)),
	}}
	body := []monty.Stmt{
		{Kind: monty.StmtAssign, Target: 0, Object: constExpr(monty.Int(0))},
		{
			Kind:   monty.StmtFor,
			Target: 1,
			Iter:   listExpr,
			Body: []monty.Stmt{
				{Kind: monty.StmtOpAssign, Target: 0, Op: monty.OpAdd, Object: nameExpr(1)},
			},
		},
		{Kind: monty.StmtExpr, Expr: printCall(nameExpr(0))},
	}
	prog := monty.NewProgram(body, []string{"total", "item"})

	w := monty.NewCollectPrintWriter()
	result, err := monty.Run(prog, monty.RunOptions{Writer: w})
	require.NoError(t, err)
	require.Equal(t, []string{"6\n"}, result.Output)
}

// TestRunReturnsLastExpressionValue covers scenario 6: the last top-level
// expression statement's value is returned from Run, not just printed.
func TestRunReturnsLastExpressionValue(t *testing.T) {
	body := []monty.Stmt{
		{Kind: monty.StmtAssign, Target: 0, Object: constExpr(monty.Int(40))},
		{Kind: monty.StmtOpAssign, Target: 0, Op: monty.OpAdd, Object: constExpr(monty.Int(2))},
		{Kind: monty.StmtExpr, Expr: nameExpr(0)},
	}
	prog := monty.NewProgram(body, []string{"x"})

	result, err := monty.Run(prog, monty.RunOptions{})
	require.NoError(t, err)
	require.Equal(t, int64(42), result.Value.AsInt())
}

// TestRunReturnsHeapResidentValueWithLiveHeap covers a final value that is
// itself heap-resident (a Str seeded through Globals): the returned Heap must still be
// usable to interpret it, since Run must not clear out from under it.
func TestRunReturnsHeapResidentValueWithLiveHeap(t *testing.T) {
	body := []monty.Stmt{
		{Kind: monty.StmtExpr, Expr: nameExpr(0)},
	}
	prog := monty.NewProgram(body, []string{"x"})

	heap := monty.NewHeap(nil)
	strID := heap.Allocate(monty.NewStr("hello"))

	result, err := monty.Run(prog, monty.RunOptions{
		Heap: heap,
		Globals: map[string]monty.Value{
			"x": monty.Ref(strID),
		},
	})
	require.NoError(t, err)
	require.True(t, result.Value.IsRef())
	require.NotNil(t, result.Heap)
	require.Equal(t, "hello", result.Heap.Get(result.Value.HeapID()).(*monty.Str).Value())

	result.Value.DropWithHeap(result.Heap)
}

// TestRunNameErrorHasTraceback covers scenario 3: referencing an
// undefined name raises NameError with a populated traceback.
func TestRunNameErrorHasTraceback(t *testing.T) {
	body := []monty.Stmt{
		{Kind: monty.StmtExpr, Line: 1, Expr: nameExpr(0)},
	}
	prog := monty.NewProgram(body, []string{"undefined"})

	_, err := monty.Run(prog, monty.RunOptions{})
	require.Error(t, err)
	exc, ok := monty.IsException(err)
	require.True(t, ok)
	require.Equal(t, monty.NameError, exc.Kind)
	require.Len(t, exc.Frames, 1)
	require.Equal(t, 1, exc.Frames[0].Line)
}

// TestRunGlobalsSeedExternalDict covers an embedder pre-populating the
// namespace with a Dict built outside the language (there is no dict
// literal in this core's expression grammar): the embedder builds the Dict
// on its own Heap and hands that Heap to Run alongside the Globals binding.
func TestRunGlobalsSeedExternalDict(t *testing.T) {
	body := []monty.Stmt{
		{Kind: monty.StmtExpr, Expr: printCall(nameExpr(0))},
	}
	prog := monty.NewProgram(body, []string{"config"})

	heap := monty.NewHeap(nil)
	dict := monty.NewDict()
	keyID := heap.Allocate(monty.NewStr("enabled"))
	require.NoError(t, dict.PySetItem(monty.Ref(keyID), monty.Bool(true), heap))
	configID := heap.Allocate(dict)

	w := monty.NewCollectPrintWriter()
	_, err := monty.Run(prog, monty.RunOptions{
		Heap:   heap,
		Writer: w,
		Globals: map[string]monty.Value{
			"config": monty.Ref(configID),
		},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"{'enabled': True}\n"}, w.Lines)
}
