// Command ccget downloads YouTube closed captions as SubRip subtitle files.
//
// It lists the caption tracks a video offers, picks one by language
// preference, converts the timedtext payload to SubRip, and records every
// download in a local history database. Configuration lives in a TOML file;
// run "ccget config init" to create one.
package main
