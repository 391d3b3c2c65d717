/*
Package domain contains the expression tree model of the algebra engine.

It defines the tagged Node, its structural edit operations and the invariants
every tree must satisfy. The package is kept pure: it knows nothing about
rules, sessions or persistence.

# Key Entities

  - Node: a tagged tree node owning an ordered list of children and a small attribute map.
  - Tag: the closed enumeration of operator and literal kinds.
  - Snapshot: a one-level shape record used to check that a forwarding rule left a node alone.
  - LifecycleHooks: callbacks fired when rules apply and when a reduction finishes.

# Ownership

A node belongs to exactly one parent. ReplaceBy and SetChild are destructive:
after a node has been replaced, the old reference must not be reduced again.
A subtree needed in several places must be cloned before it is inserted.
*/
package domain
