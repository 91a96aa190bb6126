package migrate

import "strings"

// Target is the native rule a foreign rule maps to.
type Target struct {
	Group string
	Rule  string
	// Inspired marks native rules that only approximate the foreign rule.
	Inspired bool
}

func same(group, rule string) Target     { return Target{Group: group, Rule: rule} }
func inspired(group, rule string) Target { return Target{Group: group, Rule: rule, Inspired: true} }

// catalog maps foreign rule names to native rules. ESLint core rules use
// their bare name; plugin rules are prefixed with the plugin name.
//
//nolint:gochecknoglobals // Read-only lookup table.
var catalog = map[string]Target{
	// ESLint core
	"default-param-last":              same("style", "useDefaultParameterLast"),
	"curly":                           same("style", "useBlockStatements"),
	"eqeqeq":                          inspired("suspicious", "noDoubleEquals"),
	"getter-return":                   same("suspicious", "useGetterReturn"),
	"no-async-promise-executor":       same("suspicious", "noAsyncPromiseExecutor"),
	"no-await-in-loop":                same("performance", "noAwaitInLoops"),
	"no-class-assign":                 same("suspicious", "noClassAssign"),
	"no-compare-neg-zero":             same("suspicious", "noCompareNegZero"),
	"no-cond-assign":                  inspired("suspicious", "noAssignInExpressions"),
	"no-console":                      same("suspicious", "noConsole"),
	"no-const-assign":                 same("correctness", "noConstAssign"),
	"no-constructor-return":           same("correctness", "noConstructorReturn"),
	"no-control-regex":                same("suspicious", "noControlCharactersInRegex"),
	"no-debugger":                     same("suspicious", "noDebugger"),
	"no-dupe-class-members":           same("suspicious", "noDuplicateClassMembers"),
	"no-dupe-keys":                    same("suspicious", "noDuplicateObjectKeys"),
	"no-duplicate-case":               same("suspicious", "noDuplicateCase"),
	"no-else-return":                  inspired("style", "noUselessElse"),
	"no-empty":                        same("suspicious", "noEmptyBlockStatements"),
	"no-empty-character-class":        same("correctness", "noEmptyCharacterClassInRegex"),
	"no-empty-pattern":                same("correctness", "noEmptyPattern"),
	"no-eval":                         same("security", "noGlobalEval"),
	"no-ex-assign":                    same("suspicious", "noCatchAssign"),
	"no-extra-boolean-cast":           same("complexity", "noExtraBooleanCast"),
	"no-fallthrough":                  same("suspicious", "noFallthroughSwitchClause"),
	"no-func-assign":                  same("suspicious", "noFunctionAssign"),
	"no-global-assign":                same("suspicious", "noGlobalAssign"),
	"no-import-assign":                same("suspicious", "noImportAssign"),
	"no-inner-declarations":           same("correctness", "noInnerDeclarations"),
	"no-label-var":                    same("suspicious", "noLabelVar"),
	"no-lonely-if":                    inspired("style", "useCollapsedElseIf"),
	"no-loss-of-precision":            same("correctness", "noPrecisionLoss"),
	"no-magic-numbers":                same("nursery", "noMagicNumbers"),
	"no-negated-condition":            inspired("style", "noNegationElse"),
	"no-nested-ternary":               same("style", "noNestedTernary"),
	"no-new-native-nonconstructor":    same("correctness", "noInvalidBuiltinInstantiation"),
	"no-new-wrappers":                 inspired("style", "useConsistentBuiltinInstantiation"),
	"no-param-reassign":               same("style", "noParameterAssign"),
	"no-prototype-builtins":           same("suspicious", "noPrototypeBuiltins"),
	"no-redeclare":                    same("suspicious", "noRedeclare"),
	"no-restricted-globals":           same("style", "noRestrictedGlobals"),
	"no-restricted-imports":           same("style", "noRestrictedImports"),
	"no-self-assign":                  same("correctness", "noSelfAssign"),
	"no-self-compare":                 same("suspicious", "noSelfCompare"),
	"no-sequences":                    same("style", "noCommaOperator"),
	"no-setter-return":                same("correctness", "noSetterReturn"),
	"no-shadow":                       same("nursery", "noShadow"),
	"no-shadow-restricted-names":      same("suspicious", "noShadowRestrictedNames"),
	"no-sparse-arrays":                same("suspicious", "noSparseArray"),
	"no-undef":                        same("correctness", "noUndeclaredVariables"),
	"no-unreachable":                  same("correctness", "noUnreachable"),
	"no-unsafe-finally":               same("correctness", "noUnsafeFinally"),
	"no-unsafe-negation":              same("suspicious", "noUnsafeNegation"),
	"no-unused-labels":                same("correctness", "noUnusedLabels"),
	"no-unused-private-class-members": same("correctness", "noUnusedPrivateClassMembers"),
	"no-unused-vars":                  same("correctness", "noUnusedVariables"),
	"no-useless-catch":                same("complexity", "noUselessCatch"),
	"no-useless-constructor":          same("complexity", "noUselessConstructor"),
	"no-useless-rename":               same("complexity", "noUselessRename"),
	"no-var":                          same("style", "noVar"),
	"no-void":                         same("complexity", "noVoid"),
	"no-with":                         same("suspicious", "noWith"),
	"prefer-const":                    same("style", "useConst"),
	"prefer-exponentiation-operator":  same("style", "useExponentiationOperator"),
	"prefer-template":                 same("style", "useTemplate"),
	"use-isnan":                       same("correctness", "useIsNan"),
	"valid-typeof":                    same("suspicious", "useValidTypeof"),
	"yoda":                            same("style", "noYodaExpression"),

	// typescript-eslint
	"@typescript-eslint/array-type":                    same("style", "useConsistentArrayType"),
	"@typescript-eslint/ban-types":                     inspired("complexity", "noBannedTypes"),
	"@typescript-eslint/consistent-type-exports":       inspired("style", "useExportType"),
	"@typescript-eslint/consistent-type-imports":       inspired("style", "useImportType"),
	"@typescript-eslint/no-empty-interface":            inspired("suspicious", "noEmptyInterface"),
	"@typescript-eslint/no-explicit-any":               same("suspicious", "noExplicitAny"),
	"@typescript-eslint/no-extra-non-null-assertion":   same("suspicious", "noExtraNonNullAssertion"),
	"@typescript-eslint/no-floating-promises":          same("nursery", "noFloatingPromises"),
	"@typescript-eslint/no-inferrable-types":           same("style", "noInferrableTypes"),
	"@typescript-eslint/no-misused-new":                same("suspicious", "noMisleadingInstantiator"),
	"@typescript-eslint/no-misused-promises":           same("nursery", "noMisusedPromises"),
	"@typescript-eslint/no-namespace":                  same("style", "noNamespace"),
	"@typescript-eslint/no-non-null-assertion":         same("style", "noNonNullAssertion"),
	"@typescript-eslint/no-redeclare":                  same("suspicious", "noRedeclare"),
	"@typescript-eslint/no-this-alias":                 inspired("complexity", "noUselessThisAlias"),
	"@typescript-eslint/no-unsafe-declaration-merging": same("suspicious", "noUnsafeDeclarationMerging"),
	"@typescript-eslint/no-unused-vars":                same("correctness", "noUnusedVariables"),
	"@typescript-eslint/no-useless-constructor":        same("complexity", "noUselessConstructor"),
	"@typescript-eslint/prefer-as-const":               same("style", "useAsConstAssertion"),
	"@typescript-eslint/prefer-enum-initializers":      same("style", "useEnumInitializers"),
	"@typescript-eslint/prefer-for-of":                 same("style", "useForOf"),

	// react and react-hooks
	"react/button-has-type":               same("a11y", "useButtonType"),
	"react/jsx-fragments":                 same("style", "useFragmentSyntax"),
	"react/jsx-key":                       same("correctness", "useJsxKeyInIterable"),
	"react/jsx-no-comment-textnodes":      same("suspicious", "noCommentText"),
	"react/jsx-no-useless-fragment":       same("complexity", "noUselessFragments"),
	"react/no-array-index-key":            same("suspicious", "noArrayIndexKey"),
	"react/no-children-prop":              same("correctness", "noChildrenProp"),
	"react/no-danger":                     same("security", "noDangerouslySetInnerHtml"),
	"react/no-danger-with-children":       same("security", "noDangerouslySetInnerHtmlWithChildren"),
	"react/void-dom-elements-no-children": same("correctness", "noVoidElementsWithChildren"),
	"react-hooks/exhaustive-deps":         same("correctness", "useExhaustiveDependencies"),
	"react-hooks/rules-of-hooks":          same("correctness", "useHookAtTopLevel"),

	// jsx-a11y
	"jsx-a11y/alt-text":                     same("a11y", "useAltText"),
	"jsx-a11y/anchor-has-content":           same("a11y", "useAnchorContent"),
	"jsx-a11y/anchor-is-valid":              same("a11y", "useValidAnchor"),
	"jsx-a11y/aria-props":                   same("a11y", "useValidAriaProps"),
	"jsx-a11y/aria-role":                    same("a11y", "useValidAriaRole"),
	"jsx-a11y/click-events-have-key-events": same("a11y", "useKeyWithClickEvents"),
	"jsx-a11y/heading-has-content":          same("a11y", "useHeadingContent"),
	"jsx-a11y/html-has-lang":                same("a11y", "useHtmlLang"),
	"jsx-a11y/iframe-has-title":             same("a11y", "useIframeTitle"),
	"jsx-a11y/lang":                         same("a11y", "useValidLang"),
	"jsx-a11y/media-has-caption":            same("a11y", "useMediaCaption"),
	"jsx-a11y/no-access-key":                same("a11y", "noAccessKey"),
	"jsx-a11y/no-autofocus":                 same("a11y", "noAutofocus"),
	"jsx-a11y/no-distracting-elements":      same("a11y", "noDistractingElements"),
	"jsx-a11y/no-redundant-roles":           same("a11y", "noRedundantRoles"),
	"jsx-a11y/scope":                        same("a11y", "noHeaderScope"),
	"jsx-a11y/tabindex-no-positive":         same("a11y", "noPositiveTabindex"),

	// unicorn
	"unicorn/error-message":          same("suspicious", "useErrorMessage"),
	"unicorn/filename-case":          inspired("style", "useFilenamingConvention"),
	"unicorn/no-array-for-each":      same("complexity", "noForEach"),
	"unicorn/no-document-cookie":     same("suspicious", "noDocumentCookie"),
	"unicorn/no-instanceof-array":    same("suspicious", "useIsArray"),
	"unicorn/no-static-only-class":   same("complexity", "noStaticOnlyClass"),
	"unicorn/no-useless-switch-case": same("complexity", "noUselessSwitchCase"),
	"unicorn/prefer-array-flat-map":  same("complexity", "useFlatMap"),
	"unicorn/prefer-at":              inspired("style", "useAtIndex"),
	"unicorn/prefer-node-protocol":   same("style", "useNodejsImportProtocol"),
	"unicorn/throw-new-error":        same("style", "useThrowNewError"),

	// next
	"@next/no-document-import-in-page": same("suspicious", "noDocumentImportInPage"),
	"@next/no-head-element":            same("nursery", "noHeadElement"),
	"@next/no-head-import-in-document": same("suspicious", "noHeadImportInDocument"),
	"@next/no-img-element":             same("nursery", "noImgElement"),

	// graphql-eslint
	"@graphql-eslint/require-deprecation-reason": same("style", "useDeprecatedReason"),

	// stylelint
	"stylelint/block-no-empty":                            same("suspicious", "noEmptyBlock"),
	"stylelint/declaration-block-no-duplicate-properties": same("suspicious", "noDuplicateProperties"),
	"stylelint/keyframe-declaration-no-important":         same("suspicious", "noImportantInKeyframe"),
}

// pluginAliases rewrites plugin prefixes to the ones used by the catalog.
//
//nolint:gochecknoglobals // Read-only lookup table.
var pluginAliases = map[string]string{
	"@next/next/":                "@next/",
	"typescript-eslint/":         "@typescript-eslint/",
	"eslint-plugin-react/":       "react/",
	"eslint-plugin-jsx-a11y/":    "jsx-a11y/",
	"eslint-plugin-unicorn/":     "unicorn/",
	"eslint-plugin-react-hooks/": "react-hooks/",
}

// Normalize returns the catalog key of a foreign rule name.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	for from, to := range pluginAliases {
		if rest, ok := strings.CutPrefix(name, from); ok {
			return to + rest
		}
	}
	return name
}

// Lookup returns the native rule for a foreign rule name.
func Lookup(foreign string) (Target, bool) {
	t, ok := catalog[Normalize(foreign)]
	return t, ok
}

// Plugin returns the plugin of a catalog key, or "eslint" for core rules.
func Plugin(foreign string) string {
	key := Normalize(foreign)
	if !strings.Contains(key, "/") {
		return "eslint"
	}
	if strings.HasPrefix(key, "@") {
		scope, rest, _ := strings.Cut(key[1:], "/")
		if strings.Contains(rest, "/") {
			name, _, _ := strings.Cut(rest, "/")
			return "@" + scope + "/" + name
		}
		return "@" + scope
	}
	plugin, _, _ := strings.Cut(key, "/")
	return plugin
}
