package reader

import (
	"github.com/hissp-io/hissp-go/pkg/compiler"
	"github.com/hissp-io/hissp-go/pkg/value"
)

// compileForInject lowers v to host source text for the '.#' reader
// macro, which evaluates its operand as Hissp rather than reading it as a
// literal host value. This is the one place pkg/reader depends on
// pkg/compiler; the dependency runs one way only, since the compiler never
// needs to read source itself.
func compileForInject(v value.Value, moduleName string) (string, error) {
	return compiler.CompileForm(v, compiler.Options{ModuleName: moduleName})
}
