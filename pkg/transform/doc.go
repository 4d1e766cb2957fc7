/*
Package transform holds the rules monk applies to every file it copies.

	+----------------+        +-------------------+
	| PathTransform  |        | ContentTransform  |
	| regex + <N>    |        | literal search    |
	| template       |        | and replace       |
	+-------+--------+        +---------+---------+
	        |                           |
	   file name                   file content
	        |                           |
	        v                           v
	  first match wins          applied in order,
	                            each on the output
	                            of the previous one

🎯 Purpose:
- Rename files whose base name fully matches a regular expression
- Rewrite file contents with literal search/replace pairs

🔄 Flow:
1. Rules are built once, before any file is touched
2. NewPathTransform validates the pattern, a sample name and the template
3. The walker asks FirstMatch for a rename and ApplyAll for the content

📝 Templates:
Placeholders are written as <N> where N is a 1-based capture group index.
Text outside placeholders is copied verbatim.

	t, err := transform.NewPathTransform(`([A-Za-z]+)\.java`, "<1>.cxx", "Sample.java")
	if err != nil {
		return err
	}
	name, _ := t.Rename("Widget.java") // Widget.cxx

Content search is literal. A "." in a search string only ever matches a dot.
*/
package transform
