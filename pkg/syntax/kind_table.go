package syntax

// Kind identifies a token or node of any supported language.
// Kinds form a single closed enumeration so that KindSet can test membership in O(1).
type Kind uint16

// Token and node kinds.
const (
	Tombstone Kind = iota
	EOF
	ErrorToken
	Ident
	NumberLit
	StringLit
	RegexLit
	BigintLit
	TemplateChunk
	JsxTextLit
	JsxStringLit
	CssDimension
	CssPercentage
	CssHashToken
	CssAtKeyword
	CssUrlValue
	CssUnicodeRange
	GraphqlBlockString
	GritSnippet
	GritVariableToken
	TwBase
	TwValue

	// Punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBrack
	RBrack
	Semicolon
	Comma
	Dot
	DotDotDot
	Colon
	Question
	QuestionDot
	QuestionQuestion
	FatArrow
	Eq
	Eq2
	Eq3
	Neq
	Neq2
	Lt
	Gt
	LtEq
	GtEq
	Plus
	Minus
	Star
	Slash
	Percent
	Star2
	Plus2
	Minus2
	Shl
	Shr
	UShr
	Amp
	Pipe
	Caret
	Tilde
	Bang
	Amp2
	Pipe2
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	Star2Eq
	ShlEq
	ShrEq
	UShrEq
	AmpEq
	PipeEq
	CaretEq
	Amp2Eq
	Pipe2Eq
	QuestionQuestionEq
	At
	Hash
	Dollar
	Backtick
	DollarCurly
	Match
	SlashGt
	LtSlash

	// JavaScript and TypeScript keywords.
	BreakKw
	CaseKw
	CatchKw
	ClassKw
	ConstKw
	ContinueKw
	DebuggerKw
	DefaultKw
	DeleteKw
	DoKw
	ElseKw
	EnumKw
	ExportKw
	ExtendsKw
	FalseKw
	FinallyKw
	ForKw
	FunctionKw
	IfKw
	ImportKw
	InKw
	InstanceofKw
	NewKw
	NullKw
	ReturnKw
	SuperKw
	SwitchKw
	ThisKw
	ThrowKw
	TrueKw
	TryKw
	TypeofKw
	VarKw
	VoidKw
	WhileKw
	WithKw
	LetKw
	StaticKw
	YieldKw
	AwaitKw
	AsyncKw
	OfKw
	AsKw
	FromKw
	GetKw
	SetKw
	TypeKw
	InterfaceKw
	ImplementsKw
	DeclareKw
	ReadonlyKw
	AbstractKw
	PrivateKw
	ProtectedKw
	PublicKw
	SatisfiesKw
	AnyKw
	UnknownKw
	NumberKw
	StringKw
	BooleanKw
	BigintKw
	SymbolKw
	NeverKw
	ObjectKw
	UndefinedKw
	KeyofKw
	UniqueKw
	OverrideKw
	IsKw

	// GraphQL keywords.
	GraphqlQueryKw
	GraphqlMutationKw
	GraphqlSubscriptionKw
	GraphqlFragmentKw
	GraphqlOnKw
	GraphqlSchemaKw
	GraphqlScalarKw
	GraphqlInputKw
	GraphqlUnionKw
	GraphqlDirectiveKw
	GraphqlRepeatableKw
	GraphqlExtendKw
	GraphqlImplementsKw

	// Grit keywords.
	GritWhereKw
	GritOrKw
	GritAndKw
	GritNotKw
	GritMaybeKw
	GritContainsKw
	GritWithinKw
	GritBubbleKw

	// Nodes.
	JsModule
	JsModuleItemList
	JsDirective
	JsExpressionSnippet
	JsExpressionStatement
	JsVariableStatement
	JsVariableDeclaration
	JsVariableDeclaratorList
	JsVariableDeclarator
	JsInitializerClause
	JsBlockStatement
	JsStatementList
	JsEmptyStatement
	JsIfStatement
	JsElseClause
	JsForStatement
	JsForInStatement
	JsForOfStatement
	JsForVariableDeclaration
	JsWhileStatement
	JsDoWhileStatement
	JsSwitchStatement
	JsSwitchCaseList
	JsCaseClause
	JsDefaultClause
	JsTryStatement
	JsCatchClause
	JsCatchDeclaration
	JsFinallyClause
	JsReturnStatement
	JsThrowStatement
	JsBreakStatement
	JsContinueStatement
	JsLabeledStatement
	JsDebuggerStatement
	JsWithStatement
	JsFunctionDeclaration
	JsClassDeclaration
	JsImport
	JsImportBareClause
	JsImportDefaultClause
	JsImportNamedClause
	JsImportNamespaceClause
	JsImportCombinedClause
	JsNamedImportSpecifiers
	JsNamedImportSpecifierList
	JsNamedImportSpecifier
	JsShorthandNamedImportSpecifier
	JsDefaultImportSpecifier
	JsNamespaceImportSpecifier
	JsModuleSource
	JsExport
	JsExportNamedClause
	JsExportNamedSpecifierList
	JsExportNamedSpecifier
	JsExportNamedFromClause
	JsExportFromClause
	JsExportDefaultDeclarationClause
	JsExportDefaultExpressionClause
	JsIdentifierExpression
	JsReferenceIdentifier
	JsIdentifierBinding
	JsName
	JsLiteralMemberName
	JsComputedMemberName
	JsPrivateName
	JsNumberLiteralExpression
	JsStringLiteralExpression
	JsBooleanLiteralExpression
	JsNullLiteralExpression
	JsRegexLiteralExpression
	JsBigintLiteralExpression
	JsTemplateExpression
	JsTemplateElementList
	JsTemplateChunkElement
	JsTemplateElement
	JsArrayExpression
	JsArrayElementList
	JsArrayHole
	JsSpread
	JsObjectExpression
	JsObjectMemberList
	JsPropertyObjectMember
	JsShorthandPropertyObjectMember
	JsMethodObjectMember
	JsGetterObjectMember
	JsSetterObjectMember
	JsParenthesizedExpression
	JsSequenceExpression
	JsUnaryExpression
	JsPreUpdateExpression
	JsPostUpdateExpression
	JsBinaryExpression
	JsLogicalExpression
	JsInExpression
	JsInstanceofExpression
	JsConditionalExpression
	JsAssignmentExpression
	JsIdentifierAssignment
	JsStaticMemberAssignment
	JsComputedMemberAssignment
	JsCallExpression
	JsCallArguments
	JsCallArgumentList
	JsNewExpression
	JsStaticMemberExpression
	JsComputedMemberExpression
	JsThisExpression
	JsSuperExpression
	JsFunctionExpression
	JsArrowFunctionExpression
	JsClassExpression
	JsAwaitExpression
	JsYieldExpression
	JsImportCallExpression
	JsParameters
	JsParameterList
	JsFormalParameter
	JsRestParameter
	JsFunctionBody
	JsArrayBindingPattern
	JsArrayBindingPatternElementList
	JsArrayBindingPatternElement
	JsObjectBindingPattern
	JsObjectBindingPatternPropertyList
	JsObjectBindingPatternProperty
	JsObjectBindingPatternShorthandProperty
	JsBindingPatternRest
	JsClassMemberList
	JsExtendsClause
	JsConstructorClassMember
	JsMethodClassMember
	JsPropertyClassMember
	JsGetterClassMember
	JsSetterClassMember
	JsEmptyClassMember
	JsModifierList
	TsTypeAnnotation
	TsReturnTypeAnnotation
	TsReferenceType
	TsQualifiedName
	TsUnionType
	TsUnionTypeVariantList
	TsArrayType
	TsPredefinedType
	TsLiteralType
	TsObjectType
	TsTypeMemberList
	TsPropertySignatureTypeMember
	TsTypeAliasDeclaration
	TsInterfaceDeclaration
	TsTypeArguments
	TsTypeArgumentList
	TsTypeParameters
	TsTypeParameterList
	TsTypeParameter
	TsParenthesizedType
	TsFunctionType
	TsTupleType
	TsTupleTypeElementList
	TsAsExpression
	TsSatisfiesExpression
	TsNonNullAssertionExpression
	TsExtendsClause
	TsTypeList
	TsImplementsClause
	TsIntersectionType
	TsIntersectionTypeElementList
	TsTypeofType
	TsTypeOperatorType
	TsIndexedAccessType
	TsConditionalType
	TsEnumDeclaration
	TsEnumMemberList
	TsEnumMember
	TsMethodSignatureTypeMember
	TsIndexSignatureTypeMember
	TsIndexSignatureParameter
	JsImportMetaExpression
	JsNewTargetExpression
	JsxTagExpression
	JsxElement
	JsxOpeningElement
	JsxClosingElement
	JsxSelfClosingElement
	JsxFragment
	JsxOpeningFragment
	JsxClosingFragment
	JsxName
	JsxMemberName
	JsxAttributeList
	JsxAttribute
	JsxAttributeInitializerClause
	JsxString
	JsxExpressionAttributeValue
	JsxSpreadAttribute
	JsxChildList
	JsxText
	JsxExpressionChild
	JsBogus
	JsBogusStatement
	JsBogusExpression
	JsBogusMember
	JsBogusBinding
	JsBogusAssignment
	JsBogusParameter
	TsBogusType
	JsonRoot
	JsonObjectValue
	JsonMemberList
	JsonMember
	JsonMemberName
	JsonArrayValue
	JsonArrayElementList
	JsonStringValue
	JsonNumberValue
	JsonBooleanValue
	JsonNullValue
	JsonBogus
	JsonBogusValue
	CssRoot
	CssRuleList
	CssQualifiedRule
	CssSelectorList
	CssComplexSelector
	CssDeclarationBlock
	CssDeclarationList
	CssDeclaration
	CssPropertyName
	CssComponentValueList
	CssFunction
	CssFunctionArgumentList
	CssParenthesizedValue
	CssImportant
	CssAtRule
	CssAtRulePrelude
	CssCustomPropertyValue
	CssSimpleBlock
	CssBogus
	CssBogusRule
	CssBogusDeclaration
	GraphqlRoot
	GraphqlDefinitionList
	GraphqlOperationDefinition
	GraphqlFragmentDefinition
	GraphqlSelectionSet
	GraphqlSelectionList
	GraphqlField
	GraphqlAlias
	GraphqlArguments
	GraphqlArgumentList
	GraphqlArgument
	GraphqlVariableDefinitions
	GraphqlVariableDefinitionList
	GraphqlVariableDefinition
	GraphqlVariable
	GraphqlDefaultValue
	GraphqlNamedType
	GraphqlListType
	GraphqlNonNullType
	GraphqlDirectiveList
	GraphqlDirective
	GraphqlFragmentSpread
	GraphqlInlineFragment
	GraphqlTypeCondition
	GraphqlStringValue
	GraphqlNumberValue
	GraphqlBooleanValue
	GraphqlNullValue
	GraphqlEnumValue
	GraphqlListValue
	GraphqlListValueElementList
	GraphqlObjectValue
	GraphqlObjectFieldList
	GraphqlObjectField
	GraphqlTypeSystemDefinition
	GraphqlFieldsDefinition
	GraphqlFieldDefinitionList
	GraphqlFieldDefinition
	GraphqlImplementsInterfaces
	GraphqlUnionMemberTypes
	GraphqlUnionMemberTypeList
	GraphqlEnumValuesDefinition
	GraphqlEnumValueList
	GraphqlDescription
	GraphqlArgumentsDefinition
	GraphqlInputValueDefinitionList
	GraphqlInputValueDefinition
	GraphqlDirectiveLocationList
	GraphqlNameList
	GraphqlBogus
	GraphqlBogusDefinition
	GraphqlBogusSelection
	GraphqlBogusValue
	GritRoot
	GritPatternList
	GritCodeSnippet
	GritVariable
	GritRewrite
	GritWhere
	GritPredicateList
	GritPredicateMatch
	GritPredicateAssignment
	GritAnd
	GritOr
	GritNot
	GritMaybe
	GritContains
	GritWithin
	GritBubble
	GritNodeLike
	GritNamedArgList
	GritNamedArg
	GritStringLiteral
	GritIntLiteral
	GritUndefined
	GritVariableList
	GritPatternDefinition
	GritBogus
	GritBogusPattern
	TwRoot
	TwCandidateList
	TwFullCandidate
	TwVariantList
	TwVariant
	TwFunctional
	TwStatic
	TwArbitraryValue
	TwArbitraryCandidate
	TwModifier
	TwBogus
	TwBogusCandidate

	kindCount
)

// firstNode is the first node kind; every kind before it is a token.
const firstNode = JsModule

//nolint:gochecknoglobals // Static lookup table
var kindNames = [kindCount]string{
	Tombstone:                               "TOMBSTONE",
	EOF:                                     "EOF",
	ErrorToken:                              "ErrorToken",
	Ident:                                   "Ident",
	NumberLit:                               "NumberLit",
	StringLit:                               "StringLit",
	RegexLit:                                "RegexLit",
	BigintLit:                               "BigintLit",
	TemplateChunk:                           "TemplateChunk",
	JsxTextLit:                              "JsxTextLit",
	JsxStringLit:                            "JsxStringLit",
	CssDimension:                            "CssDimension",
	CssPercentage:                           "CssPercentage",
	CssHashToken:                            "CssHashToken",
	CssAtKeyword:                            "CssAtKeyword",
	CssUrlValue:                             "CssUrlValue",
	CssUnicodeRange:                         "CssUnicodeRange",
	GraphqlBlockString:                      "GraphqlBlockString",
	GritSnippet:                             "GritSnippet",
	GritVariableToken:                       "GritVariableToken",
	TwBase:                                  "TwBase",
	TwValue:                                 "TwValue",
	LParen:                                  "LParen",
	RParen:                                  "RParen",
	LBrace:                                  "LBrace",
	RBrace:                                  "RBrace",
	LBrack:                                  "LBrack",
	RBrack:                                  "RBrack",
	Semicolon:                               "Semicolon",
	Comma:                                   "Comma",
	Dot:                                     "Dot",
	DotDotDot:                               "DotDotDot",
	Colon:                                   "Colon",
	Question:                                "Question",
	QuestionDot:                             "QuestionDot",
	QuestionQuestion:                        "QuestionQuestion",
	FatArrow:                                "FatArrow",
	Eq:                                      "Eq",
	Eq2:                                     "Eq2",
	Eq3:                                     "Eq3",
	Neq:                                     "Neq",
	Neq2:                                    "Neq2",
	Lt:                                      "Lt",
	Gt:                                      "Gt",
	LtEq:                                    "LtEq",
	GtEq:                                    "GtEq",
	Plus:                                    "Plus",
	Minus:                                   "Minus",
	Star:                                    "Star",
	Slash:                                   "Slash",
	Percent:                                 "Percent",
	Star2:                                   "Star2",
	Plus2:                                   "Plus2",
	Minus2:                                  "Minus2",
	Shl:                                     "Shl",
	Shr:                                     "Shr",
	UShr:                                    "UShr",
	Amp:                                     "Amp",
	Pipe:                                    "Pipe",
	Caret:                                   "Caret",
	Tilde:                                   "Tilde",
	Bang:                                    "Bang",
	Amp2:                                    "Amp2",
	Pipe2:                                   "Pipe2",
	PlusEq:                                  "PlusEq",
	MinusEq:                                 "MinusEq",
	StarEq:                                  "StarEq",
	SlashEq:                                 "SlashEq",
	PercentEq:                               "PercentEq",
	Star2Eq:                                 "Star2Eq",
	ShlEq:                                   "ShlEq",
	ShrEq:                                   "ShrEq",
	UShrEq:                                  "UShrEq",
	AmpEq:                                   "AmpEq",
	PipeEq:                                  "PipeEq",
	CaretEq:                                 "CaretEq",
	Amp2Eq:                                  "Amp2Eq",
	Pipe2Eq:                                 "Pipe2Eq",
	QuestionQuestionEq:                      "QuestionQuestionEq",
	At:                                      "At",
	Hash:                                    "Hash",
	Dollar:                                  "Dollar",
	Backtick:                                "Backtick",
	DollarCurly:                             "DollarCurly",
	Match:                                   "Match",
	SlashGt:                                 "SlashGt",
	LtSlash:                                 "LtSlash",
	BreakKw:                                 "BreakKw",
	CaseKw:                                  "CaseKw",
	CatchKw:                                 "CatchKw",
	ClassKw:                                 "ClassKw",
	ConstKw:                                 "ConstKw",
	ContinueKw:                              "ContinueKw",
	DebuggerKw:                              "DebuggerKw",
	DefaultKw:                               "DefaultKw",
	DeleteKw:                                "DeleteKw",
	DoKw:                                    "DoKw",
	ElseKw:                                  "ElseKw",
	EnumKw:                                  "EnumKw",
	ExportKw:                                "ExportKw",
	ExtendsKw:                               "ExtendsKw",
	FalseKw:                                 "FalseKw",
	FinallyKw:                               "FinallyKw",
	ForKw:                                   "ForKw",
	FunctionKw:                              "FunctionKw",
	IfKw:                                    "IfKw",
	ImportKw:                                "ImportKw",
	InKw:                                    "InKw",
	InstanceofKw:                            "InstanceofKw",
	NewKw:                                   "NewKw",
	NullKw:                                  "NullKw",
	ReturnKw:                                "ReturnKw",
	SuperKw:                                 "SuperKw",
	SwitchKw:                                "SwitchKw",
	ThisKw:                                  "ThisKw",
	ThrowKw:                                 "ThrowKw",
	TrueKw:                                  "TrueKw",
	TryKw:                                   "TryKw",
	TypeofKw:                                "TypeofKw",
	VarKw:                                   "VarKw",
	VoidKw:                                  "VoidKw",
	WhileKw:                                 "WhileKw",
	WithKw:                                  "WithKw",
	LetKw:                                   "LetKw",
	StaticKw:                                "StaticKw",
	YieldKw:                                 "YieldKw",
	AwaitKw:                                 "AwaitKw",
	AsyncKw:                                 "AsyncKw",
	OfKw:                                    "OfKw",
	AsKw:                                    "AsKw",
	FromKw:                                  "FromKw",
	GetKw:                                   "GetKw",
	SetKw:                                   "SetKw",
	TypeKw:                                  "TypeKw",
	InterfaceKw:                             "InterfaceKw",
	ImplementsKw:                            "ImplementsKw",
	DeclareKw:                               "DeclareKw",
	ReadonlyKw:                              "ReadonlyKw",
	AbstractKw:                              "AbstractKw",
	PrivateKw:                               "PrivateKw",
	ProtectedKw:                             "ProtectedKw",
	PublicKw:                                "PublicKw",
	SatisfiesKw:                             "SatisfiesKw",
	AnyKw:                                   "AnyKw",
	UnknownKw:                               "UnknownKw",
	NumberKw:                                "NumberKw",
	StringKw:                                "StringKw",
	BooleanKw:                               "BooleanKw",
	BigintKw:                                "BigintKw",
	SymbolKw:                                "SymbolKw",
	NeverKw:                                 "NeverKw",
	ObjectKw:                                "ObjectKw",
	UndefinedKw:                             "UndefinedKw",
	KeyofKw:                                 "KeyofKw",
	UniqueKw:                                "UniqueKw",
	OverrideKw:                              "OverrideKw",
	IsKw:                                    "IsKw",
	GraphqlQueryKw:                          "GraphqlQueryKw",
	GraphqlMutationKw:                       "GraphqlMutationKw",
	GraphqlSubscriptionKw:                   "GraphqlSubscriptionKw",
	GraphqlFragmentKw:                       "GraphqlFragmentKw",
	GraphqlOnKw:                             "GraphqlOnKw",
	GraphqlSchemaKw:                         "GraphqlSchemaKw",
	GraphqlScalarKw:                         "GraphqlScalarKw",
	GraphqlInputKw:                          "GraphqlInputKw",
	GraphqlUnionKw:                          "GraphqlUnionKw",
	GraphqlDirectiveKw:                      "GraphqlDirectiveKw",
	GraphqlRepeatableKw:                     "GraphqlRepeatableKw",
	GraphqlExtendKw:                         "GraphqlExtendKw",
	GraphqlImplementsKw:                     "GraphqlImplementsKw",
	GritWhereKw:                             "GritWhereKw",
	GritOrKw:                                "GritOrKw",
	GritAndKw:                               "GritAndKw",
	GritNotKw:                               "GritNotKw",
	GritMaybeKw:                             "GritMaybeKw",
	GritContainsKw:                          "GritContainsKw",
	GritWithinKw:                            "GritWithinKw",
	GritBubbleKw:                            "GritBubbleKw",
	JsModule:                                "JsModule",
	JsModuleItemList:                        "JsModuleItemList",
	JsDirective:                             "JsDirective",
	JsExpressionSnippet:                     "JsExpressionSnippet",
	JsExpressionStatement:                   "JsExpressionStatement",
	JsVariableStatement:                     "JsVariableStatement",
	JsVariableDeclaration:                   "JsVariableDeclaration",
	JsVariableDeclaratorList:                "JsVariableDeclaratorList",
	JsVariableDeclarator:                    "JsVariableDeclarator",
	JsInitializerClause:                     "JsInitializerClause",
	JsBlockStatement:                        "JsBlockStatement",
	JsStatementList:                         "JsStatementList",
	JsEmptyStatement:                        "JsEmptyStatement",
	JsIfStatement:                           "JsIfStatement",
	JsElseClause:                            "JsElseClause",
	JsForStatement:                          "JsForStatement",
	JsForInStatement:                        "JsForInStatement",
	JsForOfStatement:                        "JsForOfStatement",
	JsForVariableDeclaration:                "JsForVariableDeclaration",
	JsWhileStatement:                        "JsWhileStatement",
	JsDoWhileStatement:                      "JsDoWhileStatement",
	JsSwitchStatement:                       "JsSwitchStatement",
	JsSwitchCaseList:                        "JsSwitchCaseList",
	JsCaseClause:                            "JsCaseClause",
	JsDefaultClause:                         "JsDefaultClause",
	JsTryStatement:                          "JsTryStatement",
	JsCatchClause:                           "JsCatchClause",
	JsCatchDeclaration:                      "JsCatchDeclaration",
	JsFinallyClause:                         "JsFinallyClause",
	JsReturnStatement:                       "JsReturnStatement",
	JsThrowStatement:                        "JsThrowStatement",
	JsBreakStatement:                        "JsBreakStatement",
	JsContinueStatement:                     "JsContinueStatement",
	JsLabeledStatement:                      "JsLabeledStatement",
	JsDebuggerStatement:                     "JsDebuggerStatement",
	JsWithStatement:                         "JsWithStatement",
	JsFunctionDeclaration:                   "JsFunctionDeclaration",
	JsClassDeclaration:                      "JsClassDeclaration",
	JsImport:                                "JsImport",
	JsImportBareClause:                      "JsImportBareClause",
	JsImportDefaultClause:                   "JsImportDefaultClause",
	JsImportNamedClause:                     "JsImportNamedClause",
	JsImportNamespaceClause:                 "JsImportNamespaceClause",
	JsImportCombinedClause:                  "JsImportCombinedClause",
	JsNamedImportSpecifiers:                 "JsNamedImportSpecifiers",
	JsNamedImportSpecifierList:              "JsNamedImportSpecifierList",
	JsNamedImportSpecifier:                  "JsNamedImportSpecifier",
	JsShorthandNamedImportSpecifier:         "JsShorthandNamedImportSpecifier",
	JsDefaultImportSpecifier:                "JsDefaultImportSpecifier",
	JsNamespaceImportSpecifier:              "JsNamespaceImportSpecifier",
	JsModuleSource:                          "JsModuleSource",
	JsExport:                                "JsExport",
	JsExportNamedClause:                     "JsExportNamedClause",
	JsExportNamedSpecifierList:              "JsExportNamedSpecifierList",
	JsExportNamedSpecifier:                  "JsExportNamedSpecifier",
	JsExportNamedFromClause:                 "JsExportNamedFromClause",
	JsExportFromClause:                      "JsExportFromClause",
	JsExportDefaultDeclarationClause:        "JsExportDefaultDeclarationClause",
	JsExportDefaultExpressionClause:         "JsExportDefaultExpressionClause",
	JsIdentifierExpression:                  "JsIdentifierExpression",
	JsReferenceIdentifier:                   "JsReferenceIdentifier",
	JsIdentifierBinding:                     "JsIdentifierBinding",
	JsName:                                  "JsName",
	JsLiteralMemberName:                     "JsLiteralMemberName",
	JsComputedMemberName:                    "JsComputedMemberName",
	JsPrivateName:                           "JsPrivateName",
	JsNumberLiteralExpression:               "JsNumberLiteralExpression",
	JsStringLiteralExpression:               "JsStringLiteralExpression",
	JsBooleanLiteralExpression:              "JsBooleanLiteralExpression",
	JsNullLiteralExpression:                 "JsNullLiteralExpression",
	JsRegexLiteralExpression:                "JsRegexLiteralExpression",
	JsBigintLiteralExpression:               "JsBigintLiteralExpression",
	JsTemplateExpression:                    "JsTemplateExpression",
	JsTemplateElementList:                   "JsTemplateElementList",
	JsTemplateChunkElement:                  "JsTemplateChunkElement",
	JsTemplateElement:                       "JsTemplateElement",
	JsArrayExpression:                       "JsArrayExpression",
	JsArrayElementList:                      "JsArrayElementList",
	JsArrayHole:                             "JsArrayHole",
	JsSpread:                                "JsSpread",
	JsObjectExpression:                      "JsObjectExpression",
	JsObjectMemberList:                      "JsObjectMemberList",
	JsPropertyObjectMember:                  "JsPropertyObjectMember",
	JsShorthandPropertyObjectMember:         "JsShorthandPropertyObjectMember",
	JsMethodObjectMember:                    "JsMethodObjectMember",
	JsGetterObjectMember:                    "JsGetterObjectMember",
	JsSetterObjectMember:                    "JsSetterObjectMember",
	JsParenthesizedExpression:               "JsParenthesizedExpression",
	JsSequenceExpression:                    "JsSequenceExpression",
	JsUnaryExpression:                       "JsUnaryExpression",
	JsPreUpdateExpression:                   "JsPreUpdateExpression",
	JsPostUpdateExpression:                  "JsPostUpdateExpression",
	JsBinaryExpression:                      "JsBinaryExpression",
	JsLogicalExpression:                     "JsLogicalExpression",
	JsInExpression:                          "JsInExpression",
	JsInstanceofExpression:                  "JsInstanceofExpression",
	JsConditionalExpression:                 "JsConditionalExpression",
	JsAssignmentExpression:                  "JsAssignmentExpression",
	JsIdentifierAssignment:                  "JsIdentifierAssignment",
	JsStaticMemberAssignment:                "JsStaticMemberAssignment",
	JsComputedMemberAssignment:              "JsComputedMemberAssignment",
	JsCallExpression:                        "JsCallExpression",
	JsCallArguments:                         "JsCallArguments",
	JsCallArgumentList:                      "JsCallArgumentList",
	JsNewExpression:                         "JsNewExpression",
	JsStaticMemberExpression:                "JsStaticMemberExpression",
	JsComputedMemberExpression:              "JsComputedMemberExpression",
	JsThisExpression:                        "JsThisExpression",
	JsSuperExpression:                       "JsSuperExpression",
	JsFunctionExpression:                    "JsFunctionExpression",
	JsArrowFunctionExpression:               "JsArrowFunctionExpression",
	JsClassExpression:                       "JsClassExpression",
	JsAwaitExpression:                       "JsAwaitExpression",
	JsYieldExpression:                       "JsYieldExpression",
	JsImportCallExpression:                  "JsImportCallExpression",
	JsParameters:                            "JsParameters",
	JsParameterList:                         "JsParameterList",
	JsFormalParameter:                       "JsFormalParameter",
	JsRestParameter:                         "JsRestParameter",
	JsFunctionBody:                          "JsFunctionBody",
	JsArrayBindingPattern:                   "JsArrayBindingPattern",
	JsArrayBindingPatternElementList:        "JsArrayBindingPatternElementList",
	JsArrayBindingPatternElement:            "JsArrayBindingPatternElement",
	JsObjectBindingPattern:                  "JsObjectBindingPattern",
	JsObjectBindingPatternPropertyList:      "JsObjectBindingPatternPropertyList",
	JsObjectBindingPatternProperty:          "JsObjectBindingPatternProperty",
	JsObjectBindingPatternShorthandProperty: "JsObjectBindingPatternShorthandProperty",
	JsBindingPatternRest:                    "JsBindingPatternRest",
	JsClassMemberList:                       "JsClassMemberList",
	JsExtendsClause:                         "JsExtendsClause",
	JsConstructorClassMember:                "JsConstructorClassMember",
	JsMethodClassMember:                     "JsMethodClassMember",
	JsPropertyClassMember:                   "JsPropertyClassMember",
	JsGetterClassMember:                     "JsGetterClassMember",
	JsSetterClassMember:                     "JsSetterClassMember",
	JsEmptyClassMember:                      "JsEmptyClassMember",
	JsModifierList:                          "JsModifierList",
	TsTypeAnnotation:                        "TsTypeAnnotation",
	TsReturnTypeAnnotation:                  "TsReturnTypeAnnotation",
	TsReferenceType:                         "TsReferenceType",
	TsQualifiedName:                         "TsQualifiedName",
	TsUnionType:                             "TsUnionType",
	TsUnionTypeVariantList:                  "TsUnionTypeVariantList",
	TsArrayType:                             "TsArrayType",
	TsPredefinedType:                        "TsPredefinedType",
	TsLiteralType:                           "TsLiteralType",
	TsObjectType:                            "TsObjectType",
	TsTypeMemberList:                        "TsTypeMemberList",
	TsPropertySignatureTypeMember:           "TsPropertySignatureTypeMember",
	TsTypeAliasDeclaration:                  "TsTypeAliasDeclaration",
	TsInterfaceDeclaration:                  "TsInterfaceDeclaration",
	TsTypeArguments:                         "TsTypeArguments",
	TsTypeArgumentList:                      "TsTypeArgumentList",
	TsTypeParameters:                        "TsTypeParameters",
	TsTypeParameterList:                     "TsTypeParameterList",
	TsTypeParameter:                         "TsTypeParameter",
	TsParenthesizedType:                     "TsParenthesizedType",
	TsFunctionType:                          "TsFunctionType",
	TsTupleType:                             "TsTupleType",
	TsTupleTypeElementList:                  "TsTupleTypeElementList",
	TsAsExpression:                          "TsAsExpression",
	TsSatisfiesExpression:                   "TsSatisfiesExpression",
	TsNonNullAssertionExpression:            "TsNonNullAssertionExpression",
	TsExtendsClause:                         "TsExtendsClause",
	TsTypeList:                              "TsTypeList",
	TsImplementsClause:                      "TsImplementsClause",
	TsIntersectionType:                      "TsIntersectionType",
	TsIntersectionTypeElementList:           "TsIntersectionTypeElementList",
	TsTypeofType:                            "TsTypeofType",
	TsTypeOperatorType:                      "TsTypeOperatorType",
	TsIndexedAccessType:                     "TsIndexedAccessType",
	TsConditionalType:                       "TsConditionalType",
	TsEnumDeclaration:                       "TsEnumDeclaration",
	TsEnumMemberList:                        "TsEnumMemberList",
	TsEnumMember:                            "TsEnumMember",
	TsMethodSignatureTypeMember:             "TsMethodSignatureTypeMember",
	TsIndexSignatureTypeMember:              "TsIndexSignatureTypeMember",
	TsIndexSignatureParameter:               "TsIndexSignatureParameter",
	JsImportMetaExpression:                  "JsImportMetaExpression",
	JsNewTargetExpression:                   "JsNewTargetExpression",
	JsxTagExpression:                        "JsxTagExpression",
	JsxElement:                              "JsxElement",
	JsxOpeningElement:                       "JsxOpeningElement",
	JsxClosingElement:                       "JsxClosingElement",
	JsxSelfClosingElement:                   "JsxSelfClosingElement",
	JsxFragment:                             "JsxFragment",
	JsxOpeningFragment:                      "JsxOpeningFragment",
	JsxClosingFragment:                      "JsxClosingFragment",
	JsxName:                                 "JsxName",
	JsxMemberName:                           "JsxMemberName",
	JsxAttributeList:                        "JsxAttributeList",
	JsxAttribute:                            "JsxAttribute",
	JsxAttributeInitializerClause:           "JsxAttributeInitializerClause",
	JsxString:                               "JsxString",
	JsxExpressionAttributeValue:             "JsxExpressionAttributeValue",
	JsxSpreadAttribute:                      "JsxSpreadAttribute",
	JsxChildList:                            "JsxChildList",
	JsxText:                                 "JsxText",
	JsxExpressionChild:                      "JsxExpressionChild",
	JsBogus:                                 "JsBogus",
	JsBogusStatement:                        "JsBogusStatement",
	JsBogusExpression:                       "JsBogusExpression",
	JsBogusMember:                           "JsBogusMember",
	JsBogusBinding:                          "JsBogusBinding",
	JsBogusAssignment:                       "JsBogusAssignment",
	JsBogusParameter:                        "JsBogusParameter",
	TsBogusType:                             "TsBogusType",
	JsonRoot:                                "JsonRoot",
	JsonObjectValue:                         "JsonObjectValue",
	JsonMemberList:                          "JsonMemberList",
	JsonMember:                              "JsonMember",
	JsonMemberName:                          "JsonMemberName",
	JsonArrayValue:                          "JsonArrayValue",
	JsonArrayElementList:                    "JsonArrayElementList",
	JsonStringValue:                         "JsonStringValue",
	JsonNumberValue:                         "JsonNumberValue",
	JsonBooleanValue:                        "JsonBooleanValue",
	JsonNullValue:                           "JsonNullValue",
	JsonBogus:                               "JsonBogus",
	JsonBogusValue:                          "JsonBogusValue",
	CssRoot:                                 "CssRoot",
	CssRuleList:                             "CssRuleList",
	CssQualifiedRule:                        "CssQualifiedRule",
	CssSelectorList:                         "CssSelectorList",
	CssComplexSelector:                      "CssComplexSelector",
	CssDeclarationBlock:                     "CssDeclarationBlock",
	CssDeclarationList:                      "CssDeclarationList",
	CssDeclaration:                          "CssDeclaration",
	CssPropertyName:                         "CssPropertyName",
	CssComponentValueList:                   "CssComponentValueList",
	CssFunction:                             "CssFunction",
	CssFunctionArgumentList:                 "CssFunctionArgumentList",
	CssParenthesizedValue:                   "CssParenthesizedValue",
	CssImportant:                            "CssImportant",
	CssAtRule:                               "CssAtRule",
	CssAtRulePrelude:                        "CssAtRulePrelude",
	CssCustomPropertyValue:                  "CssCustomPropertyValue",
	CssSimpleBlock:                          "CssSimpleBlock",
	CssBogus:                                "CssBogus",
	CssBogusRule:                            "CssBogusRule",
	CssBogusDeclaration:                     "CssBogusDeclaration",
	GraphqlRoot:                             "GraphqlRoot",
	GraphqlDefinitionList:                   "GraphqlDefinitionList",
	GraphqlOperationDefinition:              "GraphqlOperationDefinition",
	GraphqlFragmentDefinition:               "GraphqlFragmentDefinition",
	GraphqlSelectionSet:                     "GraphqlSelectionSet",
	GraphqlSelectionList:                    "GraphqlSelectionList",
	GraphqlField:                            "GraphqlField",
	GraphqlAlias:                            "GraphqlAlias",
	GraphqlArguments:                        "GraphqlArguments",
	GraphqlArgumentList:                     "GraphqlArgumentList",
	GraphqlArgument:                         "GraphqlArgument",
	GraphqlVariableDefinitions:              "GraphqlVariableDefinitions",
	GraphqlVariableDefinitionList:           "GraphqlVariableDefinitionList",
	GraphqlVariableDefinition:               "GraphqlVariableDefinition",
	GraphqlVariable:                         "GraphqlVariable",
	GraphqlDefaultValue:                     "GraphqlDefaultValue",
	GraphqlNamedType:                        "GraphqlNamedType",
	GraphqlListType:                         "GraphqlListType",
	GraphqlNonNullType:                      "GraphqlNonNullType",
	GraphqlDirectiveList:                    "GraphqlDirectiveList",
	GraphqlDirective:                        "GraphqlDirective",
	GraphqlFragmentSpread:                   "GraphqlFragmentSpread",
	GraphqlInlineFragment:                   "GraphqlInlineFragment",
	GraphqlTypeCondition:                    "GraphqlTypeCondition",
	GraphqlStringValue:                      "GraphqlStringValue",
	GraphqlNumberValue:                      "GraphqlNumberValue",
	GraphqlBooleanValue:                     "GraphqlBooleanValue",
	GraphqlNullValue:                        "GraphqlNullValue",
	GraphqlEnumValue:                        "GraphqlEnumValue",
	GraphqlListValue:                        "GraphqlListValue",
	GraphqlListValueElementList:             "GraphqlListValueElementList",
	GraphqlObjectValue:                      "GraphqlObjectValue",
	GraphqlObjectFieldList:                  "GraphqlObjectFieldList",
	GraphqlObjectField:                      "GraphqlObjectField",
	GraphqlTypeSystemDefinition:             "GraphqlTypeSystemDefinition",
	GraphqlFieldsDefinition:                 "GraphqlFieldsDefinition",
	GraphqlFieldDefinitionList:              "GraphqlFieldDefinitionList",
	GraphqlFieldDefinition:                  "GraphqlFieldDefinition",
	GraphqlImplementsInterfaces:             "GraphqlImplementsInterfaces",
	GraphqlUnionMemberTypes:                 "GraphqlUnionMemberTypes",
	GraphqlUnionMemberTypeList:              "GraphqlUnionMemberTypeList",
	GraphqlEnumValuesDefinition:             "GraphqlEnumValuesDefinition",
	GraphqlEnumValueList:                    "GraphqlEnumValueList",
	GraphqlDescription:                      "GraphqlDescription",
	GraphqlArgumentsDefinition:              "GraphqlArgumentsDefinition",
	GraphqlInputValueDefinitionList:         "GraphqlInputValueDefinitionList",
	GraphqlInputValueDefinition:             "GraphqlInputValueDefinition",
	GraphqlDirectiveLocationList:            "GraphqlDirectiveLocationList",
	GraphqlNameList:                         "GraphqlNameList",
	GraphqlBogus:                            "GraphqlBogus",
	GraphqlBogusDefinition:                  "GraphqlBogusDefinition",
	GraphqlBogusSelection:                   "GraphqlBogusSelection",
	GraphqlBogusValue:                       "GraphqlBogusValue",
	GritRoot:                                "GritRoot",
	GritPatternList:                         "GritPatternList",
	GritCodeSnippet:                         "GritCodeSnippet",
	GritVariable:                            "GritVariable",
	GritRewrite:                             "GritRewrite",
	GritWhere:                               "GritWhere",
	GritPredicateList:                       "GritPredicateList",
	GritPredicateMatch:                      "GritPredicateMatch",
	GritPredicateAssignment:                 "GritPredicateAssignment",
	GritAnd:                                 "GritAnd",
	GritOr:                                  "GritOr",
	GritNot:                                 "GritNot",
	GritMaybe:                               "GritMaybe",
	GritContains:                            "GritContains",
	GritWithin:                              "GritWithin",
	GritBubble:                              "GritBubble",
	GritNodeLike:                            "GritNodeLike",
	GritNamedArgList:                        "GritNamedArgList",
	GritNamedArg:                            "GritNamedArg",
	GritStringLiteral:                       "GritStringLiteral",
	GritIntLiteral:                          "GritIntLiteral",
	GritUndefined:                           "GritUndefined",
	GritVariableList:                        "GritVariableList",
	GritPatternDefinition:                   "GritPatternDefinition",
	GritBogus:                               "GritBogus",
	GritBogusPattern:                        "GritBogusPattern",
	TwRoot:                                  "TwRoot",
	TwCandidateList:                         "TwCandidateList",
	TwFullCandidate:                         "TwFullCandidate",
	TwVariantList:                           "TwVariantList",
	TwVariant:                               "TwVariant",
	TwFunctional:                            "TwFunctional",
	TwStatic:                                "TwStatic",
	TwArbitraryValue:                        "TwArbitraryValue",
	TwArbitraryCandidate:                    "TwArbitraryCandidate",
	TwModifier:                              "TwModifier",
	TwBogus:                                 "TwBogus",
	TwBogusCandidate:                        "TwBogusCandidate",
}

//nolint:gochecknoglobals // Static lookup table
var kindText = [kindCount]string{
	LParen:                "(",
	RParen:                ")",
	LBrace:                "{",
	RBrace:                "}",
	LBrack:                "[",
	RBrack:                "]",
	Semicolon:             ";",
	Comma:                 ",",
	Dot:                   ".",
	DotDotDot:             "...",
	Colon:                 ":",
	Question:              "?",
	QuestionDot:           "?.",
	QuestionQuestion:      "??",
	FatArrow:              "=>",
	Eq:                    "=",
	Eq2:                   "==",
	Eq3:                   "===",
	Neq:                   "!=",
	Neq2:                  "!==",
	Lt:                    "<",
	Gt:                    ">",
	LtEq:                  "<=",
	GtEq:                  ">=",
	Plus:                  "+",
	Minus:                 "-",
	Star:                  "*",
	Slash:                 "/",
	Percent:               "%",
	Star2:                 "**",
	Plus2:                 "++",
	Minus2:                "--",
	Shl:                   "<<",
	Shr:                   ">>",
	UShr:                  ">>>",
	Amp:                   "&",
	Pipe:                  "|",
	Caret:                 "^",
	Tilde:                 "~",
	Bang:                  "!",
	Amp2:                  "&&",
	Pipe2:                 "||",
	PlusEq:                "+=",
	MinusEq:               "-=",
	StarEq:                "*=",
	SlashEq:               "/=",
	PercentEq:             "%=",
	Star2Eq:               "**=",
	ShlEq:                 "<<=",
	ShrEq:                 ">>=",
	UShrEq:                ">>>=",
	AmpEq:                 "&=",
	PipeEq:                "|=",
	CaretEq:               "^=",
	Amp2Eq:                "&&=",
	Pipe2Eq:               "||=",
	QuestionQuestionEq:    "??=",
	At:                    "@",
	Hash:                  "#",
	Dollar:                "$",
	Backtick:              "`",
	DollarCurly:           "${",
	Match:                 "<:",
	SlashGt:               "/>",
	LtSlash:               "</",
	BreakKw:               "break",
	CaseKw:                "case",
	CatchKw:               "catch",
	ClassKw:               "class",
	ConstKw:               "const",
	ContinueKw:            "continue",
	DebuggerKw:            "debugger",
	DefaultKw:             "default",
	DeleteKw:              "delete",
	DoKw:                  "do",
	ElseKw:                "else",
	EnumKw:                "enum",
	ExportKw:              "export",
	ExtendsKw:             "extends",
	FalseKw:               "false",
	FinallyKw:             "finally",
	ForKw:                 "for",
	FunctionKw:            "function",
	IfKw:                  "if",
	ImportKw:              "import",
	InKw:                  "in",
	InstanceofKw:          "instanceof",
	NewKw:                 "new",
	NullKw:                "null",
	ReturnKw:              "return",
	SuperKw:               "super",
	SwitchKw:              "switch",
	ThisKw:                "this",
	ThrowKw:               "throw",
	TrueKw:                "true",
	TryKw:                 "try",
	TypeofKw:              "typeof",
	VarKw:                 "var",
	VoidKw:                "void",
	WhileKw:               "while",
	WithKw:                "with",
	LetKw:                 "let",
	StaticKw:              "static",
	YieldKw:               "yield",
	AwaitKw:               "await",
	AsyncKw:               "async",
	OfKw:                  "of",
	AsKw:                  "as",
	FromKw:                "from",
	GetKw:                 "get",
	SetKw:                 "set",
	TypeKw:                "type",
	InterfaceKw:           "interface",
	ImplementsKw:          "implements",
	DeclareKw:             "declare",
	ReadonlyKw:            "readonly",
	AbstractKw:            "abstract",
	PrivateKw:             "private",
	ProtectedKw:           "protected",
	PublicKw:              "public",
	SatisfiesKw:           "satisfies",
	AnyKw:                 "any",
	UnknownKw:             "unknown",
	NumberKw:              "number",
	StringKw:              "string",
	BooleanKw:             "boolean",
	BigintKw:              "bigint",
	SymbolKw:              "symbol",
	NeverKw:               "never",
	ObjectKw:              "object",
	UndefinedKw:           "undefined",
	KeyofKw:               "keyof",
	UniqueKw:              "unique",
	OverrideKw:            "override",
	IsKw:                  "is",
	GraphqlQueryKw:        "query",
	GraphqlMutationKw:     "mutation",
	GraphqlSubscriptionKw: "subscription",
	GraphqlFragmentKw:     "fragment",
	GraphqlOnKw:           "on",
	GraphqlSchemaKw:       "schema",
	GraphqlScalarKw:       "scalar",
	GraphqlInputKw:        "input",
	GraphqlUnionKw:        "union",
	GraphqlDirectiveKw:    "directive",
	GraphqlRepeatableKw:   "repeatable",
	GraphqlExtendKw:       "extend",
	GraphqlImplementsKw:   "implements",
	GritWhereKw:           "where",
	GritOrKw:              "or",
	GritAndKw:             "and",
	GritNotKw:             "not",
	GritMaybeKw:           "maybe",
	GritContainsKw:        "contains",
	GritWithinKw:          "within",
	GritBubbleKw:          "bubble",
}
