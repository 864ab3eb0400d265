package mcpserver

// EntryNamingContract describes how journal files are named, so LLM clients
// create entries the UI can classify.
const EntryNamingContract = `# illien Journal Entry Naming

Every journal entry is a UTF-8 Markdown file stored flat inside the journal
directory (no sub-folders). The file name is the entry's identity.

## Daily entries

- Named ` + "`YYYY-MM-DD.md`" + `, e.g. ` + "`2024-03-05.md`" + `.
- Exactly four digits, dash, two digits, dash, two digits, then ` + "`.md`" + `.
- Digits are not checked against the calendar; use real dates anyway.
- Listed first, newest date first.

## Titled entries

- Any other name ending in ` + "`.md`" + `, e.g. ` + "`Trip to Lisbon.md`" + `.
- The title shown in the UI is the file name without ` + "`.md`" + `.
- Listed after daily entries, sorted by title ignoring case.

## Rules

1. Names must not contain ` + "`/`" + ` or ` + "`\\`" + `.
2. Saving overwrites an existing entry of the same name without warning.
3. Loading a missing entry is not an error; deleting one is.
4. Files that do not end in ` + "`.md`" + ` are ignored by the listing.
`
