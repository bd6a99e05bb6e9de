// Seed preview tool - renders seeds in the background and steps through animation frames.
//
// Usage: go run ./cmd/qqlpreview [-config path] [seed]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/qql/art"
	qcolor "github.com/pthm-cable/qql/color"
	"github.com/pthm-cable/qql/config"
	"github.com/pthm-cable/qql/traits"
)

const (
	windowWidth   = 1000
	windowHeight  = 720
	previewWidth  = 480
	previewHeight = previewWidth * 5 / 4
	displayHeight = windowHeight - 20
	displayWidth  = displayHeight * 4 / 5
	panelWidth    = windowWidth - displayWidth - 30
)

var chunkOptions = []string{"1x1", "2x2", "3x3", "4x4"}

// frameImage is a frame copied out of the renderer, ready for texture upload.
type frameImage struct {
	w, h   int
	pixels []color.RGBA
}

// renderResult is what a background render hands back to the UI loop.
type renderResult struct {
	traits traits.Traits
	frames []frameImage
	points int
	err    error
}

func main() {
	configPath := flag.String("config", "", "path to config YAML (empty = embedded defaults)")
	flag.Parse()
	config.MustInit(*configPath)

	seed := randomSeed()
	if flag.NArg() > 0 {
		s, err := traits.ParseSeed(flag.Arg(0))
		if err != nil {
			slog.Error("invalid seed", "error", err)
			os.Exit(1)
		}
		seed = s
	}

	rl.InitWindow(windowWidth, windowHeight, "QQL Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	db := qcolor.Bundled()
	img := rl.GenImageColor(previewWidth, previewHeight, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer func() { rl.UnloadTexture(texture) }()

	results := make(chan renderResult, 1)
	chunkIdx := 1
	animate := false
	rendering := false
	needsRender := true

	var (
		current renderResult
		frame   int
		playing bool
	)

	for !rl.WindowShouldClose() {
		if needsRender && !rendering {
			rendering = true
			needsRender = false
			go render(seed, db, chunkOptions[chunkIdx], animate, results)
		}

		select {
		case res := <-results:
			rendering = false
			if res.err != nil {
				slog.Error("render failed", "error", res.err)
			}
			current = res
			frame = len(res.frames) - 1
			if animate {
				frame = 0
				playing = true
			}
			if frame >= 0 {
				texture = uploadFrame(texture, current.frames[frame])
			}
		default:
		}

		if playing && frame < len(current.frames)-1 {
			frame++
			texture = uploadFrame(texture, current.frames[frame])
		} else {
			playing = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(texture.Width), Height: float32(texture.Height)},
			rl.Rectangle{X: 10, Y: 10, Width: displayWidth, Height: displayHeight},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, displayWidth, displayHeight, rl.DarkGray)

		panelX := float32(displayWidth + 20)
		panelY := float32(10)

		rl.DrawText("Seed", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 26
		s := seed.String()
		rl.DrawText(s[:34], int32(panelX), int32(panelY), 12, rl.Gray)
		rl.DrawText(s[34:], int32(panelX), int32(panelY+14), 12, rl.Gray)
		panelY += 40

		status := fmt.Sprintf("%d points, %d frames", current.points, len(current.frames))
		if rendering {
			status = "rendering..."
		}
		rl.DrawText(status, int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 30

		t := current.traits
		for _, line := range []string{
			"Flow field: " + t.FlowField.String(),
			"Turbulence: " + t.Turbulence.String(),
			"Margin: " + t.Margin.String(),
			"Color variety: " + t.ColorVariety.String(),
			"Color mode: " + t.ColorMode.String(),
			"Structure: " + t.Structure.String(),
			"Ring thickness: " + t.RingThickness.String(),
			"Ring size: " + t.RingSize.String(),
			"Size variety: " + t.SizeVariety.String(),
			"Palette: " + t.ColorPalette.String(),
			"Spacing: " + t.Spacing.String(),
			"Version: " + t.Version.String(),
		} {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
		}
		panelY += 20

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = randomSeed()
			needsRender = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Chunks "+chunkOptions[chunkIdx]) {
			chunkIdx = (chunkIdx + 1) % len(chunkOptions)
			needsRender = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animate, "Still", "Animate")) {
			animate = !animate
			needsRender = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Replay") && len(current.frames) > 0 {
			frame = 0
			playing = true
			texture = uploadFrame(texture, current.frames[frame])
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "< Frame") && frame > 0 {
			frame--
			playing = false
			texture = uploadFrame(texture, current.frames[frame])
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Frame >") && frame < len(current.frames)-1 {
			frame++
			playing = false
			texture = uploadFrame(texture, current.frames[frame])
		}
		panelY += 40
		rl.DrawText(fmt.Sprintf("Frame %d / %d", frame, max(len(current.frames)-1, 0)), int32(panelX), int32(panelY), 16, rl.DarkGray)

		rl.DrawText("Press C to copy the seed to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(seed.String())
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func randomSeed() traits.Seed {
	var s traits.Seed
	for i := range s {
		s[i] = byte(rl.GetRandomValue(0, 255))
	}
	// Mark the seed as versioned so it decodes like a minted one.
	s[26], s[27] = 0xff, 0xff
	s[28] &= 0x1f
	return s
}

func render(seed traits.Seed, db *qcolor.DB, chunks string, animate bool, out chan<- renderResult) {
	var res renderResult
	defer func() { out <- res }()

	// The panel's toggles win over the loaded config.
	cfg := *config.Cfg()
	cfg.Render.Chunks = chunks
	cfg.Render.Animate = "none"
	if animate {
		cfg.Render.Animate = "groups"
	}
	if err := cfg.Resolve(); err != nil {
		res.err = err
		return
	}

	data, err := art.Draw(seed, db, &cfg, previewWidth, func(f art.Frame) error {
		res.frames = append(res.frames, copyFrame(f))
		return nil
	})
	if err != nil {
		res.err = err
		return
	}
	data.Canvas.Close()
	res.traits = data.Traits
	res.points = data.NumPoints
}

func copyFrame(f art.Frame) frameImage {
	img := f.Canvas.Image()
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	pixels := make([]color.RGBA, w*h)
	for i := range pixels {
		p := img.Pix[i*4 : i*4+4 : i*4+4]
		pixels[i] = color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return frameImage{w: w, h: h, pixels: pixels}
}

// uploadFrame copies f into texture, recreating it when the size changed.
func uploadFrame(texture rl.Texture2D, f frameImage) rl.Texture2D {
	if int(texture.Width) != f.w || int(texture.Height) != f.h {
		rl.UnloadTexture(texture)
		img := rl.GenImageColor(f.w, f.h, rl.Black)
		texture = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
	}
	rl.UpdateTexture(texture, f.pixels)
	return texture
}
