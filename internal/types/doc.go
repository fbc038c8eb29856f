/*
Package types defines the shared data structures used throughout nuuslees.

# Domain Types

Group:
  - Named collection of feeds, unique by name
  - Declared in the configuration file

Feed:
  - A single syndication source, unique by URL
  - Belongs to exactly one group

FeedItem:
  - One article of a feed, unique by URL
  - Carries the extracted readable content once the reader has opened it

# Synthetic Aggregates

The listings prepend an "All Feeds" entry with ID AllFeedsID (-1). It is never
stored; selecting it means "everything in scope".

# Tab Identity

TabID is the stable identity of an open tab. Tabs are addressed by TabID rather
than by position, so closing a tab never invalidates the identity held by another.
*/
package types
