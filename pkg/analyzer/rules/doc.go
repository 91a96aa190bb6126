// Package rules provides the built-in lint rules and assist actions.
//
// # Rule Groups
//
// Rules are organized by group, and every rule is addressed as group/name:
//
//   - a11y:
//
//   - useAltText - Elements that need alternative text must have it
//
//   - correctness:
//
//   - noUnreachable - Code after a jump is never executed
//
//   - noUnusedVariables - Declared variables must be used
//
//   - noUndeclaredVariables - Referenced variables must be declared
//
//   - noConstAssign - Constants must not be reassigned
//
//   - suspicious:
//
//   - noDebugger - `debugger` statements must not ship
//
//   - noCompareNegZero - Comparisons against -0 are misleading
//
//   - noDoubleEquals - Use === and !==
//
//   - noExplicitAny - The `any` type disables type checking
//
//   - noConsole - Calls to console methods
//
//   - noDuplicateObjectKeys - Duplicate keys in JSON objects
//
//   - noDuplicateProperties - Duplicate CSS properties in a block
//
//   - noImportantInKeyframe - `!important` is ignored inside keyframes
//
//   - noEmptyBlock - Empty CSS blocks
//
//   - style:
//
//   - noVar - Use let or const instead of var
//
//   - useConst - Use const for bindings that are never reassigned
//
//   - useDeprecatedReason - GraphQL @deprecated directives need a reason
//
//   - nursery:
//
//   - noImgElement - Prefer framework image components over <img>
//
// # Assists
//
// The source group holds assist actions. organizeImports sorts import
// statements and the named specifiers inside them.
//
// # Registration
//
// Rules are registered with the default registry via RegisterAll.
// Each rule implements analyzer.Rule and reports through the RuleContext
// and DiagnosticBuilder infrastructure.
package rules
