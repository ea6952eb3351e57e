package main

// starterContent maps content file names to a minimal working example of the
// markdown schema: sections, role headings, and the action marker.
var starterContent = map[string]string{
	"script.md": `---
program: Mentoring
year: "2026"
---

# End-of-year review

## Looking back

### Mentee

- What were your highlights this year?
- What did not go the way you wanted?

### Mentor

- Where did you see the most growth?

### Both

- Which of our meetings or projects worked best?

## Looking forward

### Mentee

- What support do you need next year?

### Both*

- Agree on three goals for next year
- Schedule the first check-in

## Wrap up

### Both

- Anything else we should put on the record?
`,

	"skills.md": `# Skills

## Communication

- Giving feedback
- Presenting to a group*
- Writing design documents

## Technical

- Code review
- System design
- Debugging under pressure
`,
}
