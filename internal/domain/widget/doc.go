/*
Package widget implements the dashboard widget types and the card model they
render into.

# Model

A Widget renders itself into a Container by mounting a Card. The card starts
in the loading state and moves to ready (Present) or error (Fail). Cards carry
delete and edit affordances; RequestDelete and RequestEdit dispatch a
cancelable Signal to the container's listeners, which own the actual state
change.

Once a card is detached from its container every further Present or Fail is
dropped, so a feed that resolves after its widget was deleted never writes
into the board.

# Variants

  - HTML: static markup from config.content
  - RSS: fetch through the feed endpoint, filter by date, cap, present
  - GoogleNews: builds a Google News search feed URL from config.query
  - GitHubRepo: builds a releases, commits or tags Atom URL from config.repoUrl

Configuration problems are shown inline on the card and never returned.
*/
package widget
