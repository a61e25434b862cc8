// Package prompts holds the system prompts that produce the response
// format the reward suite scores.
package prompts

// MathSystemPrompt is the generation prompt for GRPO math training.
// The reward suite is tuned to its output contract: the mandatory
// think-block opening, the think/answer tag shape and the boxed final
// answer.
const MathSystemPrompt = `# Task: Solve the next math problem.

# Output Structure:
<think>
Start *exactly* with ` + "`Okay, so I need to `" + `. Then detail your internal step-by-step thinking:
- Understand the problem & plan strategy.
- Execute steps, showing work.
- CRITICAL: Continuously verify calculations/logic. State & fix errors/reconsiderations.
- Perform final checks.
</think>

<answer>
Clear, step-by-step solution based on verified thoughts.
Final Answer: $\boxed{[Your Final Answer]}$
</answer>

Follow this structure precisely.`
