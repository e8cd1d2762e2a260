package ldtest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepreport/stepreport/framework/ldtest/internal"
)

func TestStacktrace(t *testing.T) {
	_ = Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("without filtering", func(ldt *T) {
			stack := getStacktrace(true, nil)
			require.Greater(t, len(stack), 1)
			assert.Equal(t, currentPackageName(), stack[0].Package)
			assert.Contains(t, stack[0].Function, "TestStacktrace.")
			assert.True(t, hasFunction(stack, currentPackageName(), "(*T).run"), "stacktrace: %+v", stack)
		})

		ldt.Run("auto-filtering removes ldtest methods", func(ldt *T) {
			internal.RunAction(func() {
				stack := getStacktrace(false, nil)
				require.Len(t, stack, 1)
				// everything else is either in ldtest or below ldtest.Run
				assert.Equal(t, currentPackageName()+"/internal", stack[0].Package)
				assert.Equal(t, "RunAction", stack[0].Function)
			})
		})

		ldt.Run("filter out designated helpers", func(ldt *T) {
			helperFunc1(func() {
				helperFunc2(func() {
					stack := getStacktrace(true, []string{currentPackageName() + ".helperFunc2"})
					assert.True(t, hasFunction(stack, currentPackageName(), "helperFunc1"), "stacktrace: %+v", stack)
					assert.False(t, hasFunction(stack, currentPackageName(), "helperFunc2"), "stacktrace: %+v", stack)
				})
			})
		})
	})
}

func TestTransformErrorStripsTestifyPreamble(t *testing.T) {
	err := transformError(errors.New("\tError Trace:\tfoo.go:12\n\tError:\tNot equal"), nil)
	assert.Equal(t, "Not equal", err.Error())

	stack := []StacktraceInfo{{FileName: "a.go", Package: rootPackageName() + "/apptests", Function: "f", Line: 3}}
	err = transformError(errors.New("plain"), stack)
	var es ErrorWithStacktrace
	require.True(t, errors.As(err, &es))
	assert.Equal(t, "plain", es.Message)
	assert.Equal(t, "apptests.f (a.go:3)", es.Stacktrace[0].String())
}

func TestRootPackageName(t *testing.T) {
	assert.Equal(t, "github.com/stepreport/stepreport", rootPackageName())
}

func hasFunction(stack []StacktraceInfo, pkg, fn string) bool {
	for _, s := range stack {
		if s.Package == pkg && s.Function == fn {
			return true
		}
	}
	return false
}

func helperFunc1(action func()) {
	action()
}

func helperFunc2(action func()) {
	action()
}
