/*
Package domain contains the core models of the wayfinder decision navigator
and search overlay.

It is kept pure and free of I/O, following the same hexagonal split as the rest
of the module: adapters load graphs and serve sessions, the runtime moves
states, and this package only describes them.

# Key Entities

  - Step: a question with an ordered list of Options.
  - Option: a label plus exactly one Target (NextStep or ShowResult).
  - Result: a terminal node carrying a Recommendation.
  - Graph: the single identifier space holding Steps and Results.
  - State: a session snapshot whose History is the navigation stack.
  - ResultItem: one normalized search hit shown by the overlay.
*/
package domain
