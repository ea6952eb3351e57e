// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"fmt"

	"github.com/pdiddy/review-forms/pkg/types"
)

// assessmentPreamble is the fixed document setup for the rating sheet. Every
// scale position is an independently named checkbox, so marking one never
// toggles another.
const assessmentPreamble = `\documentclass[9pt,a4paper]{article}
\usepackage[margin=1in]{geometry}
\usepackage{array}
\usepackage{hyperref}
\pagestyle{empty}

\newcommand{\ratingbox}[2]{%
  \raisebox{-0ex}{\CheckBox[name=#1_#2,width=1.2ex,height=1.2ex,bordercolor={0 0 0},borderstyle=S,borderwidth=1]{}}%
}
% The target box is drawn larger than the scale boxes.
\newcommand{\targetbox}[1]{%
  \raisebox{-0.3ex}{\CheckBox[name=#1,width=1.8ex,height=1.8ex,bordercolor={0 0 0},borderstyle=S,borderwidth=1]{}}%
}

\begin{document}

\begin{center}
{\Large\bfseries Assessment of skills for next year planning}
\end{center}

\vspace{0.2cm}
`

// assessmentColumns is the shared column layout for the legend and every
// skill row: item text, five-box ability scale, spacer, three-box importance
// scale, spacer, target box.
const assessmentColumns = `@{}p{\dimexpr\textwidth-2.4cm-1.6cm-1.2cm-2em-10\tabcolsep\relax}>{\centering\arraybackslash}p{2.4cm}p{1em}>{\centering\arraybackslash}p{1.6cm}p{1em}>{\centering\arraybackslash}p{1.2cm}@{}`

// assessmentClosing is the fixed how-to block appended after the skill rows.
const assessmentClosing = `\vspace{0.4cm}

\noindent\textbf{How to fill this in}

\vspace{0.2cm}

\noindent For each skill, mark one box on the ability scale for where you stand today, from poor to great, and one box on the importance scale for how much the skill matters to your work over the coming year, from low to high. Then choose the handful of skills you most want to develop next year and mark their target box. Bring the completed sheet to your planning meeting.

\end{document}
`

// Assessment renders d as the printable skills rating sheet. Every item
// becomes one row of nine markers: a five-step ability scale, a three-step
// importance scale, and a target box for skills to develop next year. Marker
// names derive from the row counter, which starts at skill1 on every call,
// so no two rows collide.
func Assessment(d *types.Document) Rendered {
	var out doc
	out.raw(assessmentPreamble)
	out.blank()

	out.line(`\noindent`)
	out.line(`\begin{tabular}{` + assessmentColumns + `}`)
	out.line(` & {\small current ability} & & {\small importance} & & \\`)
	out.line(` & \begin{tabular*}{2.4cm}{@{}l@{\extracolsep{\fill}}r@{}}\small poor & \small great\end{tabular*} & & \begin{tabular*}{1.6cm}{@{}l@{\extracolsep{\fill}}r@{}}\small low & \small high\end{tabular*} & & {\small target} \\`)
	out.line(`\end{tabular}`)
	out.blank()
	out.gap("0.4cm")

	var fields []types.FormField
	row := 0

	for _, sec := range d.Sections {
		out.line(`\needspace{3cm}`)
		out.linef(`\noindent\textbf{%s}\\[0.15cm]`, Escape(sec.Header))

		for _, item := range sectionRows(sec) {
			row++
			name := fmt.Sprintf("skill%d", row)
			text, _ := splitItem(item)

			out.line(`\noindent\begin{tabular}{` + assessmentColumns + `}`)
			out.linef(`%s &`, Escape(text))
			out.line(`\begin{tabular*}{2.4cm}{@{}c@{\extracolsep{\fill}}c@{\extracolsep{\fill}}c@{\extracolsep{\fill}}c@{\extracolsep{\fill}}c@{}}`)
			out.linef(`\ratingbox{%s}{1} & \ratingbox{%s}{2} & \ratingbox{%s}{3} & \ratingbox{%s}{4} & \ratingbox{%s}{5}`, name, name, name, name, name)
			out.line(`\end{tabular*} & &`)
			out.line(`\begin{tabular*}{1.6cm}{@{}c@{\extracolsep{\fill}}c@{\extracolsep{\fill}}c@{}}`)
			out.linef(`\ratingbox{%s}{imp1} & \ratingbox{%s}{imp2} & \ratingbox{%s}{imp3}`, name, name, name)
			out.line(`\end{tabular*} & &`)
			out.linef(`\targetbox{%starget} \\`, name)
			out.line(`\end{tabular}\\[0.08cm]`)

			for step := 1; step <= 5; step++ {
				fields = append(fields, types.FormField{
					Name:   fmt.Sprintf("%s_%d", name, step),
					Kind:   types.FieldCheckbox,
					Prompt: text,
				})
			}
			for step := 1; step <= 3; step++ {
				fields = append(fields, types.FormField{
					Name:   fmt.Sprintf("%s_imp%d", name, step),
					Kind:   types.FieldCheckbox,
					Prompt: text,
				})
			}
			fields = append(fields, types.FormField{
				Name:   name + "target",
				Kind:   types.FieldCheckbox,
				Prompt: text,
			})
		}

		out.blank()
		out.gap("0.3cm")
	}

	out.raw(assessmentClosing)

	return Rendered{Text: out.String(), Fields: fields}
}

// sectionRows returns the rows a section contributes: its own bullets when
// it has any, otherwise the items of its role groups flattened in stored
// order. Skills content is normally flat, but authored role groups still
// rate every skill they hold.
func sectionRows(sec types.Section) []string {
	if len(sec.Items) > 0 {
		return sec.Items
	}
	var rows []string
	for _, sub := range sec.Subsections {
		rows = append(rows, sub.Items...)
	}
	return rows
}
