package interactive

import "github.com/bwmarrin/discordgo"

// OptionType mirrors discordgo.ApplicationCommandOptionType value for value.
type OptionType uint8

const (
	OptionSubcommand      OptionType = OptionType(discordgo.ApplicationCommandOptionSubCommand)
	OptionSubcommandGroup OptionType = OptionType(discordgo.ApplicationCommandOptionSubCommandGroup)
	OptionString          OptionType = OptionType(discordgo.ApplicationCommandOptionString)
	OptionInteger         OptionType = OptionType(discordgo.ApplicationCommandOptionInteger)
	OptionBoolean         OptionType = OptionType(discordgo.ApplicationCommandOptionBoolean)
	OptionUser            OptionType = OptionType(discordgo.ApplicationCommandOptionUser)
	OptionChannel         OptionType = OptionType(discordgo.ApplicationCommandOptionChannel)
	OptionRole            OptionType = OptionType(discordgo.ApplicationCommandOptionRole)
	OptionMentionable     OptionType = OptionType(discordgo.ApplicationCommandOptionMentionable)
	OptionNumber          OptionType = OptionType(discordgo.ApplicationCommandOptionNumber)
	OptionAttachment      OptionType = OptionType(discordgo.ApplicationCommandOptionAttachment)
)

var optionTypeNames = map[OptionType]string{
	OptionSubcommand:      "Subcommand",
	OptionSubcommandGroup: "SubcommandGroup",
	OptionString:          "String",
	OptionInteger:         "Integer",
	OptionBoolean:         "Boolean",
	OptionUser:            "User",
	OptionChannel:         "Channel",
	OptionRole:            "Role",
	OptionMentionable:     "Mentionable",
	OptionNumber:          "Number",
	OptionAttachment:      "Attachment",
}

func (t OptionType) String() string {
	if n, ok := optionTypeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// Valid reports whether t is a known option type.
func (t OptionType) Valid() bool {
	_, ok := optionTypeNames[t]
	return ok
}

// Branch reports whether options of this type hold children instead of a value.
func (t OptionType) Branch() bool {
	return t == OptionSubcommand || t == OptionSubcommandGroup
}

// Choice is a predefined value for String, Integer and Number options.
type Choice struct {
	Name  string
	Value any
}

// Option is a declared command option. Subcommand and SubcommandGroup options
// carry children in Options; a Subcommand also carries its own Handler.
type Option struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool

	Choices      []Choice
	ChannelTypes []discordgo.ChannelType
	MinValue     *float64
	MaxValue     *float64
	MinLength    *int
	MaxLength    int
	Autocomplete bool

	Options []*Option
	Handler CommandHandler
}
