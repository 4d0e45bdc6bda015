package parser

// Category names. Downstream passes address children by these names, so they are part of
// the tree's external contract.
const (
	CatProgram             = "Program"
	CatTopLevelDecsList    = "TopLevelDecsList"
	CatTopLevelDecsTail    = "TopLevelDecsTail"
	CatTopLevelDecl        = "TopLevelDeclaration"
	CatTypeDef             = "TypeDef"
	CatInIdentifier        = "InIdentifier"
	CatImplement           = "Implement"
	CatImplementList       = "ImplementList"
	CatImplementTail       = "ImplementListTail"
	CatImplementation      = "Implementation"
	CatUsing               = "Using"
	CatAlias               = "Alias"
	CatNamespace           = "Namespace"
	CatNamespacedType      = "NamespacedType"
	CatGenericDecl         = "GenericDeclaration"
	CatTypeParamList       = "TypeParameterList"
	CatTypeParamTail       = "TypeParameterListTail"
	CatTypeParam           = "TypeParameter"
	CatCompilationTag      = "CompilationTag"
	CatCompilationTags     = "CompilationTagList"
	CatCompilationTagsTail = "CompilationTagListTail"

	CatClassDecl         = "ClassDeclaration"
	CatInherit           = "Inherit"
	CatClassDeclList     = "ClassDeclarationList"
	CatClassDeclListTail = "ClassDeclarationListTail"
	CatClassMember       = "ClassTopLevelDeclaration"
	CatVisibility        = "Visibility"
	CatConstructor       = "ConstructorDefinition"

	CatFunctionDef     = "FunctionDefinition"
	CatStatement       = "Statement"
	CatCompound        = "CompoundStatement"
	CatStatementList   = "StatementList"
	CatStatementTail   = "StatementListTail"
	CatIteration       = "IterationStatement"
	CatSelection       = "SelectionStatement"
	CatJump            = "JumpStatement"
	CatExprStatement   = "ExpressionStatement"
	CatDeclarationList = "DeclarationList"
	CatDeclarationTail = "DeclarationListTail"

	CatTopExpression  = "TopExpression"
	CatAssignmentExpr = "AssignmentExpression"
	CatAssignment     = "Assignment"
	CatAssignOperator = "AssignOperator"
	CatExpression     = "Expression"
	CatExpressionTail = "ExpressionTail"
	CatLogicalOr      = "LogicalOr"
	CatLogicalOrTail  = "LogicalOrTail"
	CatLogicalAnd     = "LogicalAnd"
	CatLogicalAndTail = "LogicalAndTail"
	CatBitwiseOr      = "BitwiseOr"
	CatBitwiseOrTail  = "BitwiseOrTail"
	CatBitwiseXor     = "BitwiseXor"
	CatBitwiseXorTail = "BitwiseXorTail"
	CatBitwiseAnd     = "BitwiseAnd"
	CatBitwiseAndTail = "BitwiseAndTail"
	CatEquality       = "Equality"
	CatEqualityTail   = "EqualityTail"
	CatRelational     = "Relational"
	CatRelationalTail = "RelationalTail"
	CatShift          = "Shift"
	CatShiftTail      = "ShiftTail"
	CatAdditive       = "Additive"
	CatAdditiveTail   = "AdditiveTail"
	CatFactor         = "Factor"
	CatFactorTail     = "FactorTail"
	CatCast           = "CastExpression"
	CatAtom           = "Atom"
	CatAtomTail       = "AtomTail"
	CatFunctionCall   = "FunctionCall"
	CatArgsList       = "ArgsList"
	CatArgsListTail   = "ArgsListTail"

	CatTypeName             = "TypeName"
	CatSpecsAndQuals        = "SpecsAndQuals"
	CatSpecsAndQualsTail    = "SpecsAndQualsTail"
	CatQualifier            = "Qualifier"
	CatQualifierList        = "QualifierList"
	CatQualifierListTail    = "QualifierListTail"
	CatSpecifier            = "Specifier"
	CatStructOrUnionSpec    = "StructOrUnionSpecifier"
	CatStructOrUnion        = "StructOrUnion"
	CatClassSpecifier       = "ClassSpecifier"
	CatAbstractDeclarator   = "AbstractDeclarator"
	CatDirectAbstractDecl   = "DirectAbstractDeclarator"
	CatPointer              = "Pointer"
	CatDeclarator           = "Declarator"
	CatDirectDeclarator     = "DirectDeclarator"
	CatDirectDeclaratorTail = "DirectDeclaratorTail"
	CatConstantExpression   = "ConstantExpression"
	CatStructDeclaration    = "StructDeclaration"
	CatStructDeclList       = "StructDeclarationList"
	CatStructDeclarator     = "StructDeclarator"
	CatStructDeclaratorList = "StructDeclaratorList"
	CatDeclaration          = "Declaration"
	CatDeclSpecifiers       = "DeclarationSpecifiers"
	CatInitDeclaratorList   = "InitDeclaratorList"
	CatInitDeclarator       = "InitDeclarator"
	CatInitializer          = "Initializer"
	CatInitializerList      = "InitializerList"
	CatInitDeclaratorTail   = "InitDeclaratorListTail"
	CatStructDeclListTail   = "StructDeclarationListTail"
	CatStructDeclaratorTail = "StructDeclaratorListTail"
	CatParameterTypeList    = "ParameterTypeList"
	CatParameterList        = "ParameterList"
	CatParameterListTail    = "ParameterListTail"
	CatParameterDecl        = "ParameterDeclaration"
	CatIdentifierList       = "IdentifierList"
	CatIdentifierListTail   = "IdentifierListTail"
)
