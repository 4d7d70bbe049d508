// Package latex renders diagrams as LaTeX source.
//
// [Codi] produces input for the codi commutative-diagram package: objects are
// laid out in a square grid and each morphism becomes a \mor line.
//
//	\obj {A & B \\ C & };
//	\mor A f:-> B;
//
// [TikZ] produces a plain tikzpicture with node coordinates from
// [SpringLayout], a seeded Fruchterman-Reingold simulation, so the same
// diagram and seed always give the same picture.
package latex
