package review

import (
	"fmt"
	"strings"
)

const systemTemplate = `You are a senior %[1]s developer conducting a thorough code review.
Your job is to identify real problems, not nitpicks, that would be
flagged in a professional pull request.

Review the code across these five dimensions:

1. CORRECTNESS - Logic errors, incorrect assumptions, wrong return values
2. ERROR HANDLING - %[2]s
3. SECURITY - Hardcoded secrets, unsafe file operations, injection risks,
   unvalidated input
4. %[3]s
5. MAINTAINABILITY - Unclear variable names, missing or misleading docstrings,
   functions doing too many things, magic numbers or strings

Format your response exactly like this for each issue found:

[SEVERITY] Line X - Category
Problem: <one sentence describing what is wrong>
Why it matters: <one sentence explaining the consequence>
Recommendation: <one sentence explaining what to do instead>

Severity levels: CRITICAL | WARNING | SUGGESTION

After all issues, add a brief SUMMARY section (3 sentences max) with an
overall assessment.

Be direct. Do not rewrite the code. Do not praise what works correctly.`

// Prompt is the pair of instructions sent for one review.
type Prompt struct {
	System string
	User   string
}

// String renders the prompt as one instruction string, system part first.
func (p Prompt) String() string {
	return p.System + "\n\n" + p.User
}

// BuildPrompt builds the review prompt for source read from filename.
func BuildPrompt(source, filename string) Prompt {
	lang := LanguageFor(filename)
	return Prompt{
		System: SystemPrompt(lang),
		User:   BuildUserPrompt(source, filename, lang),
	}
}

// SystemPrompt returns the fixed review instruction for lang.
func SystemPrompt(lang Language) string {
	return fmt.Sprintf(systemTemplate, lang.Name, lang.Errors, lang.Style)
}

// BuildUserPrompt names the file and embeds source verbatim in a fenced code
// block. The fence grows if the source itself contains a ``` run.
func BuildUserPrompt(source, filename string, lang Language) string {
	fence := codeFence(source)
	var b strings.Builder
	fmt.Fprintf(&b, "Please review the following %s file: `%s`\n\n", lang.Name, filename)
	b.WriteString(fence)
	b.WriteString(lang.Fence)
	b.WriteString("\n")
	b.WriteString(source)
	b.WriteString("\n")
	b.WriteString(fence)
	return b.String()
}

func codeFence(source string) string {
	longest, run := 0, 0
	for _, r := range source {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}
