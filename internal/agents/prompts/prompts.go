// Package prompts holds the system instructions and prompt builders used by
// the generation agents.
package prompts

import (
	"fmt"

	"github.com/pashaarshad/MultiAgent-MCP-System/internal/types"
)

// EnhanceSystem instructs the model to expand a terse prompt into a design
// brief. Enhancement is advisory, so the instruction keeps the output free
// form.
const EnhanceSystem = `You are a professional web designer. Expand this short prompt into a detailed website specification.
Include: sections needed, color scheme, layout suggestions, and content ideas.
Be specific but concise.`

// EnhancePrompt wraps the user's original request for the enhancement call.
func EnhancePrompt(userPrompt string) string {
	return fmt.Sprintf("Expand this website request: %s", userPrompt)
}

// CodeSystem is the system instruction for the code generation call.
const CodeSystem = `You are an expert frontend developer. Generate a complete, production-ready website.
Use HTML5, Tailwind CSS (via CDN), and vanilla JavaScript.
Make it visually impressive with a dark theme and green (#22c55e) accents.
Include smooth animations and responsive design.
Return the code in ` + "```html, ```css, and ```javascript" + ` code blocks.`

// CodePrompt builds the generation prompt from the (possibly enhanced)
// specification.
func CodePrompt(specification string, singleFile bool) string {
	layout := "Return separate code blocks for HTML, CSS, and JavaScript."
	if singleFile {
		layout = "Single HTML file with embedded styles and scripts."
	}
	return fmt.Sprintf(`Generate a complete website based on this specification:

%s

Requirements:
1. Use Tailwind CSS via CDN
2. Dark theme with green accent (#22c55e)
3. Fully responsive
4. Include animations
5. %s

Return the complete code.`, specification, layout)
}

// ChatSystem is the system instruction for iterative modification requests.
const ChatSystem = `You are a helpful web development assistant.
The user wants to modify their website code.
Analyze their request and provide the updated code.
If they ask for a specific change, make only that change.
Return updated code in appropriate code blocks.`

// ChatContext embeds the project's current artifacts and the new user
// message into one prompt. Absent artifacts are replaced by an explicit
// placeholder so the model knows they do not exist yet.
func ChatContext(current types.Artifacts, message string) string {
	return fmt.Sprintf(`Current HTML:
`+"```html"+`
%s
`+"```"+`

Current CSS:
`+"```css"+`
%s
`+"```"+`

Current JavaScript:
`+"```javascript"+`
%s
`+"```"+`

User request: %s

Please make the requested modifications and return the updated code.`,
		orPlaceholder(current.HTML, "No HTML yet"),
		orPlaceholder(current.CSS, "No CSS yet"),
		orPlaceholder(current.JS, "No JavaScript yet"),
		message,
	)
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// RouterSystem constrains the model to the fixed task plan JSON shape.
const RouterSystem = `You are a System Architect. Analyze the website specification and break it down into specialized tasks.

Return a JSON object with this EXACT structure:
{
    "code_task": "Detailed instructions for the coder to build the HTML/CSS/JS structure...",
    "images": [
        {"filename": "hero_bg.jpg", "description": "A futuristic city skyline..."},
        {"filename": "logo.png", "description": "Modern tech logo..."}
    ],
    "videos": [
        {"filename": "intro.mp4", "description": "Explanation of the product..."}
    ],
    "audio": [
        {"filename": "background.mp3", "description": "Ambient electronic music..."}
    ]
}
RETURN JSON ONLY.`
