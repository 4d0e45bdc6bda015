// Package parser implements a backtracking recursive-descent parser for the cx
// language: C declarations and statements extended with classes, namespaces,
// implement sections and generic functions.
//
// # Overview
//
// The grammar is ambiguous without knowing which identifiers name types. `(T) x`
// is a cast when T is a type and a parenthesised expression followed by garbage
// otherwise; `a::b c;` is a declaration only when `b` is a type. The parser keeps
// a [TypeContext] that typedefs, classes, using directives and generic parameter
// lists write to, and re-tags every identifier it reads against it.
//
//	┌─────────────┐     ┌─────────────┐     ┌──────────────┐
//	│   Stream    │────▶│   Parser    │────▶│ CategoryNode │
//	│  (tokens)   │     │  (rules)    │     │    (tree)    │
//	└─────────────┘     └─────────────┘     └──────────────┘
//	                       │       ▲
//	                       ▼       │
//	                    ┌─────────────┐
//	                    │ TypeContext │
//	                    └─────────────┘
//
// # Backtracking
//
// Alternatives are tried under a checkpoint that records the cursor, the type
// names, the error ledger and the partially built tree. An attempt ends in one
// of three ways:
//
//	Parsed    the rule succeeded, its effects are kept
//	Rollback  the rule failed, everything is rewound
//	Desync    the rule failed after committing, errors are kept
//
// A rule commits by calling forceCommit once it has seen enough to be sure of
// the alternative, e.g. after `typedef` or after the operator of an assignment.
//
// # Errors
//
// Errors raised inside an uncommitted attempt are temporary: they disappear with
// a rollback and become permanent with a desync. Errors raised while skipping to
// a synchronisation token (a missing semicolon) survive the success of the
// enclosing attempt. When a whole construct fails, its errors are folded into a
// single composite [Diagnostic] whose Related entries point at each candidate.
//
// # Tree
//
// The tree is a concrete one: each grammar category produces a [CategoryNode]
// named after it (see the Cat constants) and each consumed token that carries
// meaning produces a [LeafNode]. Lists are right-nested:
//
//	StatementList
//	├── Statement
//	└── StatementListTail
//	    └── StatementList
//	        ├── Statement
//	        └── StatementListTail
//
// Downstream passes annotate nodes through the inherited and synthesized
// attribute slots; the parser never reads them.
package parser
