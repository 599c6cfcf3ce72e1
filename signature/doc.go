// Package signature compiles JNI method signatures into marshalling plans.
//
// The grammar is "(" {type}* ")" type, where type is one of the primitive
// codes ZBCSIJFD, V (return only), L<class>; or a "["-prefixed array. Parse
// scans the return part first and the arguments after it, so the first kind
// of Plan.Kinds is always the return kind:
//
//	plan, err := signature.Parse("(I[Ljava/lang/String;)Z")
//	// plan.Return == types.KindBoolean
//	// plan.Args   == []types.Kind{types.KindInt, types.KindObjectArray}
//
// Arrays of two or more dimensions degrade to KindObjectArray, which is how
// they cross the native boundary.
package signature
