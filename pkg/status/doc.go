/*
Package status describes what a walk did to each entry of the source tree.

	+-----------+     +-----------+     +-----------+
	|   Entry   | --> |  Summary  | --> |  String   |
	| per path  |     |  totals   |     | one line  |
	+-----------+     +-----------+     +-----------+

🎯 Purpose:
- Name the action taken for each directory and file
- Tally actions into a Summary returned by the walker
- Format entries as fixed-width console lines
- Render line diffs for dry runs

Nothing here touches the filesystem.
*/
package status
