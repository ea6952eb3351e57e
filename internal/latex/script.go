// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"github.com/pdiddy/review-forms/pkg/types"
)

// scriptPreamble is the fixed document setup for meeting scripts. Form
// fields print with no visible border.
const scriptPreamble = `\documentclass[9pt,a4paper]{article}
\usepackage[margin=1in]{geometry}
\usepackage{hyperref}
\usepackage{xcolor}
\usepackage{needspace}

\hypersetup{
    pdfborder={0 0 0}
}

\begin{document}
`

// Script renders d as the end-of-year meeting script read by role. Questions
// owned by role get fillable text fields, the other participant's questions
// appear grayed for reference, and starred groups or items become italic
// instructions. Field numbering starts at field1 on every call.
func Script(d *types.Document, role types.Role) Rendered {
	other := role.Other()

	var out doc
	out.raw(scriptPreamble)
	out.blank()

	if d.Title != "" {
		out.line(`\begin{center}`)
		out.linef(`{\Large\bfseries %s (%s)}`, Escape(d.Title), role)
		out.line(`\end{center}`)
		out.blank()
		out.gap("0.5cm")
	}

	out.line(`\noindent\textbf{Instructions:}`)
	out.blank()
	out.gap("0.2cm")
	out.linef(`\noindent This script is designed to help you prepare for and guide your end-of-year meeting. Questions in black are meant for you to answer and have fillable text fields. Questions in gray (prefixed with `+"``"+`%s:'') are for the other person and are provided for your reference. Items in italics are instructions or actions to be completed.`, other)
	out.blank()
	out.gap("0.2cm")
	out.line(`\noindent\textbf{Preparation:} Please complete this form \textit{before} the meeting. Thoughtful preparation is essential---take time to reflect deeply on each question. Your honest, considered responses will make the meeting more productive and meaningful for both parties.`)
	out.blank()
	out.gap("0.5cm")

	tally := &fieldTally{}
	var unknown []string
	reported := make(map[string]bool)

	for _, sec := range d.Sections {
		out.line(`\needspace{6cm}`)
		out.linef(`\noindent\textbf{\large %s}`, Escape(sec.Header))
		out.blank()
		out.gap("0.3cm")

		for _, sub := range sec.Subsections {
			switch classify(sub.Header, role) {
			case groupAction:
				for _, item := range sub.Items {
					text, _ := splitItem(item)
					writeAction(&out, text)
				}

			case groupShared:
				for _, item := range sub.Items {
					text, action := splitItem(item)
					if action {
						writeAction(&out, text)
						continue
					}
					writeField(&out, tally.textField(text, role), text, "", "0.2cm")
					writeField(&out, tally.textField(text, other), text, other, "0.4cm")
				}

			case groupOwn:
				for _, item := range sub.Items {
					text, action := splitItem(item)
					if action {
						writeAction(&out, text)
						continue
					}
					writeField(&out, tally.textField(text, role), text, "", "0.4cm")
				}

			case groupOther:
				for _, item := range sub.Items {
					text, _ := splitItem(item)
					out.linef(`\noindent{\color{gray}%s: %s}`, other, Escape(text))
					out.blank()
					out.gap("0.15cm")
				}

			default:
				if !reported[sub.Header] {
					reported[sub.Header] = true
					unknown = append(unknown, sub.Header)
				}
			}
		}

		out.gap("0.3cm")
	}

	out.line(`\end{document}`)

	return Rendered{Text: out.String(), Fields: tally.fields, Unknown: unknown}
}

// writeAction emits an instruction line: italic text, no field.
func writeAction(out *doc, text string) {
	out.linef(`\noindent\textit{%s}`, Escape(text))
	out.blank()
	out.gap("0.3cm")
}

// writeField emits a question followed by its fillable text box. A non-empty
// label renders the question grayed and prefixed with that role, used for
// the other participant's copy of a shared question. tail is the vertical
// space closing the block.
func writeField(out *doc, name, text string, label types.Role, tail string) {
	out.line(`\needspace{4cm}`)
	if label != "" {
		out.linef(`\noindent{\color{gray}%s: %s}`, label, Escape(text))
	} else {
		out.line(`\noindent ` + Escape(text))
	}
	out.blank()
	out.line(`\vspace{0.3em}`)
	out.linef(`\noindent\TextField[name=%s,multiline=true,width=\textwidth,height=2.5cm,bordercolor={0 0 0},backgroundcolor={0.95 0.95 0.95}]{}`, name)
	out.blank()
	out.gap(tail)
}
