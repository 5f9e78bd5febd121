// Package anthropic exposes a memorytool.Tool to Claude tool calling. It
// builds the tool definition for the Messages API and executes tool_use
// blocks against any backend implementing the contract.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/memorylake/memorylake-go/memorytool"
)

// ToolParam builds the Anthropic tool definition for the memory tool.
func ToolParam() anthropic.ToolUnionParam {
	schema := memorytool.InputSchema()

	inputSchema := anthropic.ToolInputSchemaParam{
		Type: constant.Object("object"),
	}
	if properties, ok := schema["properties"]; ok {
		inputSchema.Properties = properties
	}
	if required, ok := schema["required"].([]string); ok {
		inputSchema.Required = required
	}

	return anthropic.ToolUnionParamOfTool(inputSchema, memorytool.ToolName)
}

// RunToolUse executes a memory tool_use block and converts the outcome into
// a tool_result content block. Tool failures come back as is_error results
// so the model can react to them; they are never reported as success.
func RunToolUse(ctx context.Context, tool memorytool.Tool, block anthropic.ToolUseBlock) anthropic.ContentBlockParamUnion {
	input, err := json.Marshal(block.Input)
	if err != nil {
		return anthropic.NewToolResultBlock(block.ID, fmt.Sprintf("invalid tool input: %v", err), true)
	}

	result, err := memorytool.ExecutePayload(ctx, tool, input)
	if err != nil {
		return anthropic.NewToolResultBlock(block.ID, err.Error(), true)
	}
	return anthropic.NewToolResultBlock(block.ID, result, false)
}
