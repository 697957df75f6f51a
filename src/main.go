package main

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/jdonald/tessellation-demo/packages/camera"
	"github.com/jdonald/tessellation-demo/packages/geometry"
	"github.com/jdonald/tessellation-demo/packages/tess"
	"github.com/muesli/termenv"
)

//go:embed shaders/*.glsl
var shaderFiles embed.FS

type Config struct {
	Width, Height int
	Title         string
	ClearColor    [3]float32
	CameraStart   mgl.Vec3
	VSync         bool
}

var defaultConfig = Config{
	Width:       1280,
	Height:      720,
	Title:       "OpenGL Tessellation Demo - Go",
	ClearColor:  [3]float32{0.1, 0.1, 0.15},
	CameraStart: mgl.Vec3{0, 1.5, 5},
	VSync:       true,
}

// App is the composition root. It owns every collaborator and passes
// them explicitly into the per-frame calls.
type App struct {
	cfg       Config
	window    *glfw.Window
	gfx       *Renderer_GL
	pipelines *tess.PipelineSet
	ctrl      *tess.Controller
	cam       *camera.Camera
	input     *Input
	fps       fpsCounter
	showHelp  bool
	console   io.Writer
	term      *termenv.Output
}

func init() {
	runtime.LockOSThread()
}

// Checks if error is not null, if there is an error it logs it and exits.
func chk(err error) {
	if err != nil {
		log.Fatalln(err)
	}
}

type fpsCounter struct {
	fps      float64
	prevTime float64
	frames   float64
}

// tick counts a frame and reports whether the average was refreshed.
func (f *fpsCounter) tick(now float64) bool {
	f.frames++
	if dt := now - f.prevTime; dt >= 1 {
		f.fps = f.frames / dt
		f.frames = 0
		f.prevTime = now
		return true
	}
	return false
}

func initGLFW(cfg Config) *glfw.Window {
	if err := glfw.Init(); err != nil {
		log.Fatalln("failed to initialize glfw:", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		log.Fatalln("failed to create window:", err)
	}
	window.MakeContextCurrent()
	return window
}

func newApp(cfg Config) *App {
	a := &App{
		cfg:      cfg,
		gfx:      &Renderer_GL{},
		cam:      camera.New(cfg.CameraStart),
		showHelp: true,
		console:  os.Stdout,
		term:     termenv.NewOutput(os.Stdout),
	}
	writeBanner(a.console, a.term)
	fmt.Fprintln(a.console, "Starting application...")

	a.window = initGLFW(cfg)
	a.gfx.Init(cfg.ClearColor)
	fbw, fbh := a.window.GetFramebufferSize()
	a.gfx.SetViewport(int32(fbw), int32(fbh))
	a.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		a.gfx.SetViewport(int32(width), int32(height))
	})

	shaders, err := fs.Sub(shaderFiles, "shaders")
	chk(err)
	a.pipelines = tess.NewPipelineSet(shaders, a.gfx)
	a.loadPipelines()

	a.gfx.SetMesh(geometry.Scene())

	a.ctrl = tess.NewController(a.pipelines)
	if err := a.ctrl.Reselect(); err != nil {
		slog.Warn("No pipeline for the initial selection, rendering disabled", "err", err)
	}

	a.input = newInput(a.window)
	if cfg.VSync {
		glfw.SwapInterval(1)
	}
	a.fps.prevTime = glfw.GetTime()
	fmt.Fprintln(a.console, "OpenGL Tessellation Demo loaded successfully!")
	return a
}

func (a *App) loadPipelines() {
	err := a.pipelines.LoadAll()
	if err == nil {
		return
	}
	for _, k := range tess.AllKeys() {
		if lerr := a.pipelines.Err(k); lerr != nil {
			slog.Warn("Failed to load shader", "key", k.String(), "err", lerr)
		}
	}
	slog.Info("Pipelines loaded", "available", len(a.pipelines.Available()), "total", len(tess.AllKeys()))
}

func (a *App) render() {
	a.gfx.BeginFrame()
	prog := a.ctrl.Active()
	if prog == nil {
		return
	}
	vp := a.cam.ViewProjection(a.gfx.Aspect())
	a.gfx.RenderPatches(prog, a.ctrl.FrameUniforms(vp), a.ctrl.CurrentPatchVertexCount())
}

func (a *App) statusLine() string {
	sel := a.ctrl.Selection()
	return fmt.Sprintf("%s | %s | %s | %s | level %.1f | %.1f FPS",
		a.cfg.Title, sel.Domain.Title(), sel.Spacing.Title(), sel.Mode, sel.TessLevel, a.fps.fps)
}

func (a *App) Run() {
	last := glfw.GetTime()
	for !a.window.ShouldClose() {
		glfw.PollEvents()
		now := glfw.GetTime()
		a.update(float32(now - last))
		last = now

		a.render()
		a.window.SwapBuffers()
		if a.fps.tick(now) {
			a.window.SetTitle(a.statusLine())
		}
	}
}

func (a *App) Close() {
	a.pipelines.ReleaseAll()
	a.gfx.Close()
	a.window.Destroy()
}

func main() {
	app := newApp(defaultConfig)
	defer glfw.Terminate()
	defer app.Close()
	app.Run()
}
