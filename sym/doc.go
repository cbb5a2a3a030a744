// Package sym is a small symbolic-math kernel: exact rational constants,
// deterministic canonicalizing constructors, partial differentiation, and
// rule-based definite integration and summation. It exists to derive
// Fisher information in closed algebraic form, and supports exactly the
// expression shapes that arise from log-densities of the common
// exponential-family distributions.
//
// Limitations:
//   - Simplification is structural (canonical sums of monomials), not a
//     full rational-function normalizer.
//   - Integration and summation are pattern-based; unsupported shapes
//     return ErrNoClosedForm rather than an unevaluated expression.
//   - All symbols are assumed to denote positive reals, except the
//     reduction variable, which ranges over the stated bounds. Power
//     rewrites such as (a*b)^e = a^e * b^e rely on this assumption.
package sym
