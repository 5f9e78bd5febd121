// Package openai exposes a memorytool.Tool as an OpenAI function tool. It
// builds the function definition for the Chat Completions API and executes
// tool calls against any backend implementing the contract.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/memorylake/memorylake-go/memorytool"
)

// ToolParam builds the OpenAI function tool definition for the memory tool.
func ToolParam() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Type: "function",
		Function: openai.FunctionDefinitionParam{
			Name:        memorytool.ToolName,
			Description: openai.String(memorytool.ToolDescription),
			Parameters:  memorytool.InputSchema(),
		},
	}
}

// RunToolCall executes a memory tool call and returns the tool message to
// append to the conversation. Tool failures are surfaced in the message
// text so the model can react to them; they are never reported as success.
func RunToolCall(ctx context.Context, tool memorytool.Tool, call openai.ChatCompletionMessageToolCall) openai.ChatCompletionMessageParamUnion {
	result, err := memorytool.ExecutePayload(ctx, tool, []byte(call.Function.Arguments))
	if err != nil {
		return openai.ToolMessage(fmt.Sprintf("memory tool error: %v", err), call.ID)
	}
	return openai.ToolMessage(result, call.ID)
}
