package generative

import "fmt"

// ThemeColor is the brand red every generated image is steered towards.
const ThemeColor = "#ef4442"

// EquipmentInfoPrompt asks for a four-section markdown guide to one machine.
func EquipmentInfoPrompt(equipmentName string) string {
	return fmt.Sprintf(`Provide a comprehensive guide for the gym equipment: "%s". 
Include the following sections:
1.  **Primary Muscles Targeted:** List the main muscles worked.
2.  **Proper Technique:** Give a step-by-step guide on how to use the equipment correctly and safely.
3.  **Common Mistakes to Avoid:** List common errors people make and how to correct them.
4.  **Tips for Beginners:** Provide one or two helpful tips for someone new to this machine.

Format the response in clear, concise language suitable for gym-goers. Use markdown for formatting (bolding, lists).`, equipmentName)
}

// BuildImagePrompt describes a photo of the machine, with a person using it
// when characterDescription is set and an empty gym otherwise.
func BuildImagePrompt(equipmentName, characterDescription string) string {
	if characterDescription != "" {
		return fmt.Sprintf("A high-quality, photorealistic image of %s using a %s in a modern gym. "+
			"The scene should be dominated by the color theme %s (a vibrant red). Centered, dynamic shot.",
			characterDescription, equipmentName, ThemeColor)
	}
	return fmt.Sprintf("A high-quality, photorealistic image of a %s in a modern, well-lit gym. "+
		"The scene should prominently feature the color %s (a vibrant red). Centered shot, no people.",
		equipmentName, ThemeColor)
}
