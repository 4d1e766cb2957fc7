/*
Package walker copies a template tree into a new target tree.

	+--------------+      +--------------+      +--------------+
	|  source fs   | ---> |    Walker    | ---> |  target fs   |
	| (read only)  |      |  pre-order   |      | (write once) |
	+--------------+      +------+-------+      +--------------+
	                             |
	                  +----------+----------+
	                  |          |          |
	             exclusions   renames   replacements

🔄 Flow:
1. Visit a directory, skipping it with its subtree when its name is excluded
2. Create the mirrored target directory if it does not exist yet
3. Write every regular file of the directory, renamed by the first matching
   rule and with every content rule applied in order
4. Descend into subdirectories, in name order

⚡ Failure:
The first I/O error stops the walk. Files written before it stay in place.
A target file that already exists is an error, never overwritten.

Both trees are billy filesystems so the walk can run against memfs in tests
and osfs for real.
*/
package walker
