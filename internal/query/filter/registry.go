// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package filter

// Registry is the fixed, ordered catalog of filters a query can
// invoke. Order matters for two things only (spec §4.C): generating
// the grammar's FILTER alternation, and the deterministic order in
// which the plan synthesizer visits filters. It does not matter for
// correctness of any single filter's own predicate.
func Registry() []Filter {
	return []Filter{
		NewPathFilter(),
		NewExtFilter(),
		&TrigramTextFilter{},

		NewStructuralFilter(
			"function",
			"Function or method definition: function:foo",
			"SELECT 1 FROM functions WHERE %s AND functions.file_id = files.id",
			"SELECT functions.extent_start, functions.extent_end FROM functions WHERE functions.file_id = files.id AND %s ORDER BY functions.extent_start",
			"functions.name", "functions.qualname",
		),
		NewStructuralFilter(
			"function-ref",
			"Function or method references",
			"SELECT 1 FROM functions, function_refs AS refs WHERE %s AND functions.id = refs.refid AND refs.file_id = files.id",
			"SELECT refs.extent_start, refs.extent_end FROM function_refs AS refs WHERE refs.file_id = files.id AND EXISTS (SELECT 1 FROM functions WHERE %s AND functions.id = refs.refid) ORDER BY refs.extent_start",
			"functions.name", "functions.qualname",
		),
		NewStructuralFilter(
			"function-decl",
			"Function or method declaration",
			"SELECT 1 FROM functions, function_decldef AS decldef WHERE %s AND functions.id = decldef.defid AND decldef.file_id = files.id",
			"SELECT decldef.extent_start, decldef.extent_end FROM function_decldef AS decldef WHERE decldef.file_id = files.id AND EXISTS (SELECT 1 FROM functions WHERE %s AND functions.id = decldef.defid) ORDER BY decldef.extent_start",
			"functions.name", "functions.qualname",
		),

		NewUnionFilter(
			"Functions which call the given function or method: callers:GetStringFromName",
			NewStructuralFilter(
				"callers",
				"",
				"SELECT 1 FROM functions AS caller, functions AS target, callers WHERE %s AND callers.targetid = target.id AND callers.callerid = caller.id AND caller.file_id = files.id",
				"SELECT functions.extent_start, functions.extent_end FROM functions WHERE functions.file_id = files.id AND EXISTS (SELECT 1 FROM functions AS target, callers WHERE %s AND callers.targetid = target.id AND callers.callerid = functions.id) ORDER BY functions.extent_start",
				"target.name", "target.qualname",
			),
			NewStructuralFilter(
				"callers",
				"",
				"SELECT 1 FROM functions AS caller, functions AS target, callers, targets WHERE %s AND targets.funcid = target.id AND targets.targetid = callers.targetid AND callers.callerid = caller.id AND caller.file_id = files.id",
				"SELECT functions.extent_start, functions.extent_end FROM functions WHERE functions.file_id = files.id AND EXISTS (SELECT 1 FROM functions AS target, callers, targets WHERE %s AND targets.funcid = target.id AND targets.targetid = callers.targetid AND callers.callerid = functions.id) ORDER BY functions.extent_start",
				"target.name", "target.qualname",
			),
		),

		NewUnionFilter(
			"Functions or methods which are called by the given one",
			NewStructuralFilter(
				"called-by",
				"",
				"SELECT 1 FROM functions AS target, functions AS caller, callers WHERE %s AND callers.callerid = caller.id AND callers.targetid = target.id AND target.file_id = files.id",
				"SELECT functions.extent_start, functions.extent_end FROM functions WHERE functions.file_id = files.id AND EXISTS (SELECT 1 FROM functions AS caller, callers WHERE %s AND caller.id = callers.callerid AND callers.targetid = functions.id) ORDER BY functions.extent_start",
				"caller.name", "caller.qualname",
			),
			NewStructuralFilter(
				"called-by",
				"",
				"SELECT 1 FROM functions AS target, functions AS caller, callers, targets WHERE %s AND callers.callerid = caller.id AND targets.funcid = target.id AND targets.targetid = callers.targetid AND target.file_id = files.id",
				"SELECT functions.extent_start, functions.extent_end FROM functions WHERE functions.file_id = files.id AND EXISTS (SELECT 1 FROM functions AS caller, callers, targets WHERE %s AND caller.id = callers.callerid AND targets.funcid = functions.id AND targets.targetid = callers.targetid) ORDER BY functions.extent_start",
				"caller.name", "caller.qualname",
			),
		),

		NewUnionFilter(
			"Type or class definition: type:Stack",
			NewStructuralFilter(
				"type",
				"",
				"SELECT 1 FROM types WHERE %s AND types.file_id = files.id",
				"SELECT types.extent_start, types.extent_end FROM types WHERE types.file_id = files.id AND %s ORDER BY types.extent_start",
				"types.name", "types.qualname",
			),
			NewStructuralFilter(
				"type",
				"",
				"SELECT 1 FROM typedefs WHERE %s AND typedefs.file_id = files.id",
				"SELECT typedefs.extent_start, typedefs.extent_end FROM typedefs WHERE typedefs.file_id = files.id AND %s ORDER BY typedefs.extent_start",
				"typedefs.name", "typedefs.qualname",
			),
		),

		NewUnionFilter(
			"Type or class references, uses, or instantiations",
			NewStructuralFilter(
				"type-ref",
				"",
				"SELECT 1 FROM types, type_refs AS refs WHERE %s AND types.id = refs.refid AND refs.file_id = files.id",
				"SELECT refs.extent_start, refs.extent_end FROM type_refs AS refs WHERE refs.file_id = files.id AND EXISTS (SELECT 1 FROM types WHERE %s AND types.id = refs.refid) ORDER BY refs.extent_start",
				"types.name", "types.qualname",
			),
			NewStructuralFilter(
				"type-ref",
				"",
				"SELECT 1 FROM typedefs, typedef_refs AS refs WHERE %s AND typedefs.id = refs.refid AND refs.file_id = files.id",
				"SELECT refs.extent_start, refs.extent_end FROM typedef_refs AS refs WHERE refs.file_id = files.id AND EXISTS (SELECT 1 FROM typedefs WHERE %s AND typedefs.id = refs.refid) ORDER BY refs.extent_start",
				"typedefs.name", "typedefs.qualname",
			),
		),

		NewStructuralFilter(
			"type-decl",
			"Type or class declaration",
			"SELECT 1 FROM types, type_decldef AS decldef WHERE %s AND types.id = decldef.defid AND decldef.file_id = files.id",
			"SELECT decldef.extent_start, decldef.extent_end FROM type_decldef AS decldef WHERE decldef.file_id = files.id AND EXISTS (SELECT 1 FROM types WHERE %s AND types.id = decldef.defid) ORDER BY decldef.extent_start",
			"types.name", "types.qualname",
		),

		NewStructuralFilter(
			"var",
			"Variable definition",
			"SELECT 1 FROM variables WHERE %s AND variables.file_id = files.id",
			"SELECT variables.extent_start, variables.extent_end FROM variables WHERE variables.file_id = files.id AND %s ORDER BY variables.extent_start",
			"variables.name", "variables.qualname",
		),
		NewStructuralFilter(
			"var-ref",
			"Variable uses (lvalue, rvalue, dereference, etc.)",
			"SELECT 1 FROM variables, variable_refs AS refs WHERE %s AND variables.id = refs.refid AND refs.file_id = files.id",
			"SELECT refs.extent_start, refs.extent_end FROM variable_refs AS refs WHERE refs.file_id = files.id AND EXISTS (SELECT 1 FROM variables WHERE %s AND variables.id = refs.refid) ORDER BY refs.extent_start",
			"variables.name", "variables.qualname",
		),
		NewStructuralFilter(
			"var-decl",
			"Variable declaration",
			"SELECT 1 FROM variables, variable_decldef AS decldef WHERE %s AND variables.id = decldef.defid AND decldef.file_id = files.id",
			"SELECT decldef.extent_start, decldef.extent_end FROM variable_decldef AS decldef WHERE decldef.file_id = files.id AND EXISTS (SELECT 1 FROM variables WHERE %s AND variables.id = decldef.defid) ORDER BY decldef.extent_start",
			"variables.name", "variables.qualname",
		),

		NewStructuralFilter(
			"macro",
			"Macro definition",
			"SELECT 1 FROM macros WHERE %s AND macros.file_id = files.id",
			"SELECT macros.extent_start, macros.extent_end FROM macros WHERE macros.file_id = files.id AND %s ORDER BY macros.extent_start",
			"macros.name", "macros.name",
		),
		NewStructuralFilter(
			"macro-ref",
			"Macro uses",
			"SELECT 1 FROM macros, macro_refs AS refs WHERE %s AND macros.id = refs.refid AND refs.file_id = files.id",
			"SELECT refs.extent_start, refs.extent_end FROM macro_refs AS refs WHERE refs.file_id = files.id AND EXISTS (SELECT 1 FROM macros WHERE %s AND macros.id = refs.refid) ORDER BY refs.extent_start",
			"macros.name", "macros.name",
		),

		NewStructuralFilter(
			"namespace",
			"Namespace definition",
			"SELECT 1 FROM namespaces WHERE %s AND namespaces.file_id = files.id",
			"SELECT namespaces.extent_start, namespaces.extent_end FROM namespaces WHERE namespaces.file_id = files.id AND %s ORDER BY namespaces.extent_start",
			"namespaces.name", "namespaces.qualname",
		),
		NewStructuralFilter(
			"namespace-ref",
			"Namespace references",
			"SELECT 1 FROM namespaces, namespace_refs AS refs WHERE %s AND namespaces.id = refs.refid AND refs.file_id = files.id",
			"SELECT refs.extent_start, refs.extent_end FROM namespace_refs AS refs WHERE refs.file_id = files.id AND EXISTS (SELECT 1 FROM namespaces WHERE %s AND namespaces.id = refs.refid) ORDER BY refs.extent_start",
			"namespaces.name", "namespaces.qualname",
		),
		NewStructuralFilter(
			"namespace-alias",
			"Namespace alias",
			"SELECT 1 FROM namespace_aliases WHERE %s AND namespace_aliases.file_id = files.id",
			"SELECT namespace_aliases.extent_start, namespace_aliases.extent_end FROM namespace_aliases WHERE namespace_aliases.file_id = files.id AND %s ORDER BY namespace_aliases.extent_start",
			"namespace_aliases.name", "namespace_aliases.qualname",
		),
		NewStructuralFilter(
			"namespace-alias-ref",
			"Namespace alias references",
			"SELECT 1 FROM namespace_aliases, namespace_alias_refs AS refs WHERE %s AND namespace_aliases.id = refs.refid AND refs.file_id = files.id",
			"SELECT refs.extent_start, refs.extent_end FROM namespace_alias_refs AS refs WHERE refs.file_id = files.id AND EXISTS (SELECT 1 FROM namespace_aliases WHERE %s AND namespace_aliases.id = refs.refid) ORDER BY refs.extent_start",
			"namespace_aliases.name", "namespace_aliases.qualname",
		),

		NewStructuralFilter(
			"bases",
			"Superclasses of a class: bases:SomeSubclass",
			"SELECT 1 FROM types AS base, impl, types WHERE %s AND impl.tbase = base.id AND impl.tderived = types.id AND base.file_id = files.id",
			"SELECT base.extent_start, base.extent_end FROM types AS base WHERE base.file_id = files.id AND EXISTS (SELECT 1 FROM impl, types WHERE impl.tbase = base.id AND impl.tderived = types.id AND %s)",
			"types.name", "types.qualname",
		),
		NewStructuralFilter(
			"derived",
			"Subclasses of a class: derived:SomeSuperclass",
			"SELECT 1 FROM types AS sub, impl, types WHERE %s AND impl.tbase = types.id AND impl.tderived = sub.id AND sub.file_id = files.id",
			"SELECT sub.extent_start, sub.extent_end FROM types AS sub WHERE sub.file_id = files.id AND EXISTS (SELECT 1 FROM impl, types WHERE impl.tbase = types.id AND impl.tderived = sub.id AND %s)",
			"types.name", "types.qualname",
		),

		NewUnionFilter(
			"Member variables, types, or methods of a class: member:SomeClass",
			NewStructuralFilter(
				"member",
				"",
				"SELECT 1 FROM types AS type, functions AS mem WHERE %s AND mem.scopeid = type.id AND mem.file_id = files.id",
				"SELECT mem.extent_start, mem.extent_end FROM functions AS mem WHERE mem.file_id = files.id AND EXISTS (SELECT 1 FROM types AS type WHERE %s AND type.id = mem.scopeid) ORDER BY mem.extent_start",
				"type.name", "type.qualname",
			),
			NewStructuralFilter(
				"member",
				"",
				"SELECT 1 FROM types AS type, types AS mem WHERE %s AND mem.scopeid = type.id AND mem.file_id = files.id",
				"SELECT mem.extent_start, mem.extent_end FROM types AS mem WHERE mem.file_id = files.id AND EXISTS (SELECT 1 FROM types AS type WHERE %s AND type.id = mem.scopeid) ORDER BY mem.extent_start",
				"type.name", "type.qualname",
			),
			NewStructuralFilter(
				"member",
				"",
				"SELECT 1 FROM types AS type, variables AS mem WHERE %s AND mem.scopeid = type.id AND mem.file_id = files.id",
				"SELECT mem.extent_start, mem.extent_end FROM variables AS mem WHERE mem.file_id = files.id AND EXISTS (SELECT 1 FROM types AS type WHERE %s AND type.id = mem.scopeid) ORDER BY mem.extent_start",
				"type.name", "type.qualname",
			),
		),

		NewStructuralFilter(
			"overridden",
			"Methods which are overridden by the given one. Useful mostly with fully qualified methods, like +overridden:Derived::foo().",
			"SELECT 1 FROM functions AS base, functions AS derived, targets WHERE %s AND base.id = -targets.targetid AND derived.id = targets.funcid AND base.id <> derived.id AND base.file_id = files.id",
			"SELECT functions.extent_start, functions.extent_end FROM functions WHERE functions.file_id = files.id AND EXISTS (SELECT 1 FROM functions AS derived, targets WHERE %s AND functions.id = -targets.targetid AND derived.id = targets.funcid AND functions.id <> derived.id) ORDER BY functions.extent_start",
			"derived.name", "derived.qualname",
		),
		NewStructuralFilter(
			"overrides",
			"Methods which override the given one: overrides:someMethod",
			"SELECT 1 FROM functions AS base, functions AS derived, targets WHERE %s AND base.id = -targets.targetid AND derived.id = targets.funcid AND base.id <> derived.id AND derived.file_id = files.id",
			"SELECT functions.extent_start, functions.extent_end FROM functions WHERE functions.file_id = files.id AND EXISTS (SELECT 1 FROM functions AS base, targets WHERE %s AND base.id = -targets.targetid AND functions.id = targets.funcid AND base.id <> functions.id) ORDER BY functions.extent_start",
			"base.name", "base.qualname",
		),

		NewStructuralFilter(
			"warning",
			"Compiler warning messages",
			"SELECT 1 FROM warnings WHERE %s AND warnings.file_id = files.id",
			"SELECT warnings.extent_start, warnings.extent_end FROM warnings WHERE warnings.file_id = files.id AND %s",
			"warnings.msg", "warnings.msg",
		),
		NewStructuralFilter(
			"warning-opt",
			"More (less severe?) warning messages",
			"SELECT 1 FROM warnings WHERE %s AND warnings.file_id = files.id",
			"SELECT warnings.extent_start, warnings.extent_end FROM warnings WHERE warnings.file_id = files.id AND %s",
			"warnings.opt", "warnings.opt",
		),
	}
}

// KindNames returns every kind name the registry's filters claim, in
// registry order, for building the grammar's FILTER alternation
// (lang.NewParser sorts these longest-first itself).
func KindNames(filters []Filter) []string {
	var names []string
	for _, f := range filters {
		names = append(names, f.Names()...)
	}
	return names
}

// MenuItems returns the {name, description} pairs for every filter in
// the registry, for rendering a filter menu (spec §6).
func MenuItems(filters []Filter) []MenuItem {
	items := make([]MenuItem, len(filters))
	for i, f := range filters {
		items[i] = f.MenuItem()
	}
	return items
}
