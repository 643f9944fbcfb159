// Package view draws a heightmap and its fewest-steps routes on a terminal
// using tcell. Elevations are shaded from deep green at the lowest code to
// white at the peak, and the active route is overlaid with arrows that
// point toward the goal.
//
// Two routes are computed up front: the one from the designated start and
// the best one from any lowest cell. Run flips between them on tab.
package view
